package allocine

// Selectors names every DOM query the crawlers rely on.
type Selectors struct {
	FilmCard     string
	FilmTitle    string
	FilmRating   string
	ReviewBlock  string
	ReviewTitle  string
	ReviewText   string
	ReviewMore   string
	FullReview   string
	NextPage     string
	CookieAccept string
	DetailMeta   string
	DirectorLink string
}

// DefaultSelectors matches the AlloCiné member pages.
var DefaultSelectors = Selectors{
	FilmCard:     ".card.entity-card-simple.userprofile-entity-card-simple",
	FilmTitle:    ".meta-title.meta-title-link",
	FilmRating:   ".rating-mdl",
	ReviewBlock:  ".review-card",
	ReviewTitle:  ".review-card-title a.xXx",
	ReviewText:   ".content-txt.review-card-content",
	ReviewMore:   ".blue-link.link-more",
	FullReview:   ".content-txt.review-card-content",
	NextPage:     ".button.button-md.button-primary-full.button-right",
	CookieAccept: ".jad_cmp_paywall_button",
	DetailMeta:   ".meta-body-info",
	DirectorLink: `a.xXx.dark-grey-link[href*="/personne/fichepersonne_gen_cpersonne="]`,
}
