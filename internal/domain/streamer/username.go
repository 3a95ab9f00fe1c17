package streamer

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)
	urlPathRe  = regexp.MustCompile(`twitch\.tv/([a-zA-Z0-9_]{4,25})`)
)

// ParseLogin accepts a bare username or a full twitch.tv URL and returns
// the canonical lowercase login. Twitch usernames are 4-25 characters of
// letters, digits and underscore, case-insensitive.
func ParseLogin(input string) (Login, error) {
	input = strings.TrimSpace(input)

	if strings.Contains(input, "twitch.tv/") {
		if u, err := url.Parse(input); err == nil {
			segments := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
			if len(segments) > 0 {
				return validate(segments[len(segments)-1])
			}
		}
		if m := urlPathRe.FindStringSubmatch(input); m != nil {
			return validate(m[1])
		}
		return "", ErrInvalidUsername
	}

	return validate(input)
}

func validate(name string) (Login, error) {
	if len(name) < 4 || len(name) > 25 {
		return "", ErrInvalidUsername
	}
	if !usernameRe.MatchString(name) {
		return "", ErrInvalidUsername
	}
	return Login(strings.ToLower(name)), nil
}
