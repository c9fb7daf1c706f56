package scraper

import (
	"context"
	"strings"
)

const robotCheckJS = `() => ({
	title: document.title || "",
	captcha: !!document.querySelector('form[action*="validateCaptcha"]'),
})`

// robotCheckReason returns a non-empty reason when the page state looks
// like the storefront's bot wall.
func robotCheckReason(title string, captchaForm bool) string {
	switch {
	case captchaForm:
		return "captcha form present"
	case strings.Contains(strings.ToLower(title), "robot check"):
		return "robot check page"
	case strings.Contains(strings.ToLower(title), "sorry! something went wrong"):
		return "storefront error page"
	}
	return ""
}

// robotCheck inspects the current page. Evaluation errors count as "not
// blocked" so the caller falls through to its own timeout handling.
func (s *rodSession) robotCheck(ctx context.Context) string {
	res, err := s.page.Context(ctx).Eval(robotCheckJS)
	if err != nil {
		return ""
	}
	return robotCheckReason(res.Value.Get("title").Str(), res.Value.Get("captcha").Bool())
}
