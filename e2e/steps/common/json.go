package common

import "encoding/json"

// rawJSON passes a feature-file payload through the JSON encoder untouched.
type rawJSON string

func (r rawJSON) MarshalJSON() ([]byte, error) {
	if !json.Valid([]byte(r)) {
		return json.Marshal(string(r))
	}
	return []byte(r), nil
}
