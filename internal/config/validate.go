package config

import (
	"fmt"
	"net/url"
	"strings"
)

type Validation struct {
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

func (v *Validation) addErr(format string, args ...any) {
	v.Errors = append(v.Errors, fmt.Sprintf(format, args...))
}
func (v *Validation) addWarn(format string, args ...any) {
	v.Warnings = append(v.Warnings, fmt.Sprintf(format, args...))
}
func (v Validation) OK() bool { return len(v.Errors) == 0 }

// NormalizeAndValidate returns a normalized copy plus everything worth
// telling the operator. Missing Telegram credentials are a warning, not an
// error: the monitor still runs, it just can't notify.
func NormalizeAndValidate(cfg Config) (Config, Validation) {
	out := cfg
	var res Validation

	out.Telegram.Token = strings.TrimSpace(out.Telegram.Token)
	out.EmailRecipient = strings.TrimSpace(out.EmailRecipient)
	out.StateFile = strings.TrimSpace(out.StateFile)

	if out.StateFile == "" {
		out.StateFile = DefaultStateFile
	}
	if out.Portal.MaxPages < 1 {
		res.addWarn("portal.max_pages %d normalized to 1", out.Portal.MaxPages)
		out.Portal.MaxPages = 1
	}

	for name, raw := range map[string]string{
		"portal.base_url":   out.Portal.BaseURL,
		"portal.search_url": out.Portal.SearchURL,
	} {
		u, err := url.Parse(raw)
		if err != nil || u.Scheme == "" || u.Host == "" {
			res.addErr("%s is not an absolute URL: %q", name, raw)
		}
	}

	if out.Telegram.Token == "" || out.Telegram.ChatID == 0 {
		res.addWarn("telegram credentials incomplete; notifications will be skipped")
	}
	if out.EmailRecipient != "" {
		// Carried over from the previous deployment; nothing sends email.
		res.addWarn("email_recipient is set but unused")
	}

	return out, res
}
