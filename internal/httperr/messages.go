package httperr

import (
	"context"
	"net/http"

	"golang.org/x/text/language"
)

type messageKey int

const (
	msgDefault messageKey = iota
	msgBadRequest
	msgUnauthorized
	msgForbidden
	msgNotFound
	msgServer
	msgGone
)

// Supported lists the languages messages are available in, the first one is the fallback
var Supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(Supported)

var messages = map[language.Tag]map[messageKey]string{
	language.English: {
		msgDefault:      "request failed",
		msgBadRequest:   "bad request",
		msgUnauthorized: "authorization required",
		msgForbidden:    "access denied",
		msgNotFound:     "resource not found",
		msgServer:       "server error, try again later",
		msgGone:         "resource is no longer available",
	},
	language.Russian: {
		msgDefault:      "не удалось выполнить запрос",
		msgBadRequest:   "некорректный запрос",
		msgUnauthorized: "требуется авторизация",
		msgForbidden:    "доступ запрещён",
		msgNotFound:     "ресурс не найден",
		msgServer:       "ошибка сервера, попробуйте позже",
		msgGone:         "ресурс больше недоступен",
	},
}

// StatusMessage returns the fixed message for an HTTP status in the given language.
// Unsupported languages fall back to English.
func StatusMessage(status int, tag language.Tag) string {
	catalog, ok := messages[tag]

	if !ok {
		catalog = messages[Supported[0]]
	}

	return catalog[statusKey(status)]
}

// GoneMessage is the message for resources that existed but are no longer valid.
// Normalize never produces it, upstream 410 responses map to the default message.
func GoneMessage(tag language.Tag) string {
	catalog, ok := messages[tag]

	if !ok {
		catalog = messages[Supported[0]]
	}

	return catalog[msgGone]
}

func statusKey(status int) messageKey {
	switch {
	case status == http.StatusBadRequest:
		return msgBadRequest
	case status == http.StatusUnauthorized:
		return msgUnauthorized
	case status == http.StatusForbidden:
		return msgForbidden
	case status == http.StatusNotFound:
		return msgNotFound
	case status >= http.StatusInternalServerError:
		return msgServer
	default:
		return msgDefault
	}
}

// MatchLanguage picks the best supported language for an Accept-Language header value
func MatchLanguage(acceptLanguage string) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)

	if err != nil || len(tags) == 0 {
		return Supported[0]
	}

	_, idx, confidence := matcher.Match(tags...)

	if confidence == language.No {
		return Supported[0]
	}

	return Supported[idx]
}

type languageKey struct{}

// WithLanguage stores the language normalized messages should use
func WithLanguage(ctx context.Context, tag language.Tag) context.Context {
	return context.WithValue(ctx, languageKey{}, tag)
}

// LanguageFrom returns the language stored by WithLanguage or the fallback one
func LanguageFrom(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(languageKey{}).(language.Tag); ok {
		return tag
	}

	return Supported[0]
}
