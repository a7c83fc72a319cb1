package model

import "encoding/json"

// UserID is an opaque backend user identifier. The backend sometimes encodes
// it as a bare JSON number (platform-supplied numeric ids) and sometimes as a
// string, so decoding accepts both.
type UserID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (u *UserID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*u = UserID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*u = UserID(s)
	return nil
}

// RiddleID identifies a riddle for hint and answer correlation. It is opaque
// to the client; like UserID the wire encoding may be a number or a string.
type RiddleID string

// UnmarshalJSON accepts either a JSON string or a JSON number.
func (r *RiddleID) UnmarshalJSON(data []byte) error {
	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*r = RiddleID(n.String())
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = RiddleID(s)
	return nil
}
