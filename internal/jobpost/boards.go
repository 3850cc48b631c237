package jobpost

import (
	"net/url"
	"strings"
)

// Board is a job board whose page layout is known
type Board string

// Known boards
const (
	BoardGreenhouse Board = "greenhouse"
	BoardLever      Board = "lever"
	BoardWorkday    Board = "workday"
	BoardAshby      Board = "ashby"
	BoardGeneric    Board = "generic"
)

var boardHosts = []struct {
	suffix string
	board  Board
}{
	{"greenhouse.io", BoardGreenhouse},
	{"lever.co", BoardLever},
	{"myworkdayjobs.com", BoardWorkday},
	{"workday.com", BoardWorkday},
	{"ashbyhq.com", BoardAshby},
}

// DetectBoard identifies the job board serving u
func DetectBoard(u *url.URL) Board {
	host := strings.ToLower(u.Hostname())
	for _, h := range boardHosts {
		if host == h.suffix || strings.HasSuffix(host, "."+h.suffix) {
			return h.board
		}
	}
	return BoardGeneric
}

func (b Board) contentSelectors() []string {
	generic := []string{
		".job-description",
		"#job-description",
		".job-details",
		"[data-testid='job-description']",
		"main",
		"article",
		"#content",
	}
	switch b {
	case BoardGreenhouse:
		return append([]string{".job__description", "#content"}, generic...)
	case BoardLever:
		return append([]string{".posting-page", ".posting-description"}, generic...)
	case BoardWorkday:
		return append([]string{"[data-automation-id='jobPostingDescription']"}, generic...)
	case BoardAshby:
		return append([]string{"[class*='descriptionText']"}, generic...)
	default:
		return generic
	}
}

func (b Board) noiseSelectors() []string {
	common := []string{
		"nav", "header", "footer", "script", "style", "noscript",
		"form", ".application-form", "#application-form",
		".eeo-statement", ".voluntary-disclosure",
		".cookie-banner", ".social-share",
	}
	switch b {
	case BoardGreenhouse:
		return append(common, ".application--wrapper", "#usa_self_id_section")
	case BoardLever:
		return append(common, ".posting-apply", ".apply-section")
	case BoardWorkday:
		return append(common, "[data-automation-id='applyButton']")
	default:
		return common
	}
}
