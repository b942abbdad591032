// Package gates holds the confirmation gate in front of destructive actions.
//
// Every delete modal asks the user to type a word before the Delete button is
// enabled; the server checks the same rule so a crafted post cannot skip it.
package gates

import (
	"net/http"
	"strings"
)

// ConfirmWord must be typed to enable a delete.
const ConfirmWord = "delete"

// ConfirmField is the form field the word is posted in.
const ConfirmField = "confirm"

// ConfirmMessage is shown when the gate rejects a submit.
const ConfirmMessage = "Type delete to confirm."

// Confirmed reports whether typed is the confirm word, ignoring case.
// Surrounding spaces are not trimmed: " delete" does not pass.
func Confirmed(typed string) bool {
	return strings.EqualFold(typed, ConfirmWord)
}

// DeleteConfirmed applies Confirmed to the posted confirm field.
func DeleteConfirmed(r *http.Request) bool {
	return Confirmed(r.PostFormValue(ConfirmField))
}
