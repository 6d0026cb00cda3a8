package main

import "github.com/and161185/budget-keeper/internal/store"

type msgID int

const (
	msgLoginRequired msgID = iota
	msgSessionEnded
	msgLoggedOut
	msgDeleted
	msgResetSent
)

var catalog = map[string]map[msgID]string{
	store.LangEnglish: {
		msgLoginRequired: "login required: run 'bk login'",
		msgSessionEnded:  "session ended: run 'bk login'",
		msgLoggedOut:     "logged out",
		msgDeleted:       "deleted",
		msgResetSent:     "if the address is registered, a reset link has been sent",
	},
	store.LangDutch: {
		msgLoginRequired: "inloggen vereist: voer 'bk login' uit",
		msgSessionEnded:  "sessie beëindigd: voer 'bk login' uit",
		msgLoggedOut:     "uitgelogd",
		msgDeleted:       "verwijderd",
		msgResetSent:     "als het adres bekend is, is er een herstellink verstuurd",
	},
}

// msg looks up id in lang, falling back to English.
func msg(lang string, id msgID) string {
	if s, ok := catalog[lang][id]; ok {
		return s
	}
	return catalog[store.LangEnglish][id]
}
