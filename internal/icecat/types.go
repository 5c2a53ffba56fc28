package icecat

// Wire types for the Icecat LIVE JSON API. Only the subtrees the helper
// presents are decoded; everything else in the payload is ignored.

type envelope struct {
	Msg  string   `json:"msg"`
	Data *payload `json:"data"`
}

type payload struct {
	GeneralInfo    generalInfo      `json:"GeneralInfo"`
	Image          imageData        `json:"Image"`
	Gallery        []galleryItem    `json:"Gallery"`
	FeaturesGroups []featuresGroup  `json:"FeaturesGroups"`
	Multimedia     []multimediaItem `json:"Multimedia"`
}

type generalInfo struct {
	ProductName        string             `json:"ProductName"`
	Brand              string             `json:"Brand"`
	BrandPartCode      string             `json:"BrandPartCode"`
	SummaryDescription summaryDescription `json:"SummaryDescription"`
}

type summaryDescription struct {
	Short string `json:"ShortSummaryDescription"`
	Long  string `json:"LongSummaryDescription"`
}

// localizedName is Icecat's {"Value": "..."} wrapper around translated names.
type localizedName struct {
	Value string `json:"Value"`
}

type featuresGroup struct {
	FeatureGroup struct {
		Name localizedName `json:"Name"`
	} `json:"FeatureGroup"`
	Features []featureItem `json:"Features"`
}

type featureItem struct {
	Feature struct {
		Name localizedName `json:"Name"`
	} `json:"Feature"`
	PresentationValue string `json:"PresentationValue"`
}

type imageData struct {
	Pic500x500 string `json:"Pic500x500"`
	HighPic    string `json:"HighPic"`
}

type galleryItem struct {
	ThumbPic string `json:"ThumbPic"`
	Pic      string `json:"Pic"`
}

type multimediaItem struct {
	URL         string `json:"URL"`
	IsVideo     bool   `json:"IsVideo"`
	Description string `json:"Description"`
}
