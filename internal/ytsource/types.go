package ytsource

// Innertube API constants and wire types. Higher-level fetching lives in
// ytsource.go.

const (
	playerURL        = "https://www.youtube.com/youtubei/v1/player"
	watchURLPrefix   = "https://www.youtube.com/watch?v="
	androidVersion   = "20.10.38"
	androidUserAgent = "com.google.android.youtube/" + androidVersion + " (Linux; U; Android 11) gzip"
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// CaptionTrack is one caption track offered for a video. Kind "asr" marks
// an auto-generated track.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"`
}

// AutoGenerated reports whether the track is speech-recognition generated.
func (t CaptionTrack) AutoGenerated() bool {
	return t.Kind == "asr"
}

// --- ANDROID client types (/player endpoint) ---

type innertubeReq struct {
	VideoID        string       `json:"videoId"`
	Context        innertubeCtx `json:"context"`
	RacyCheckOk    bool         `json:"racyCheckOk"`
	ContentCheckOk bool         `json:"contentCheckOk"`
}

type innertubeCtx struct {
	Client innertubeClient `json:"client"`
}

type innertubeClient struct {
	ClientName        string `json:"clientName"`
	ClientVersion     string `json:"clientVersion"`
	AndroidSdkVersion int    `json:"androidSdkVersion,omitempty"`
	Hl                string `json:"hl,omitempty"`
	Gl                string `json:"gl,omitempty"`
}

type playerResp struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []CaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

// --- Timedtext XML types ---

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start float64 `xml:"start,attr"`
	Dur   float64 `xml:"dur,attr"`
	Text  string  `xml:",chardata"`
}
