package cricketdata

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// listResponse is the envelope returned by the list endpoints.
// Data and Matches are pointers so a missing field can be told apart from an empty one.
type listResponse struct {
	Status  string         `json:"status"`
	Reason  string         `json:"reason"`
	Data    *[]matchRecord `json:"data"`
	Matches *[]matchRecord `json:"matches"`
}

type matchRecord struct {
	ID           flexString   `json:"id"`
	Name         string       `json:"name"`
	MatchType    string       `json:"matchType"`
	Status       string       `json:"status"`
	Venue        string       `json:"venue"`
	Date         string       `json:"date"`
	DateTimeGMT  string       `json:"dateTimeGMT"`
	Teams        []string     `json:"teams"`
	TeamInfo     []teamRecord `json:"teamInfo"`
	Score        []scoreEntry `json:"score"`
	MatchStarted bool         `json:"matchStarted"`
	MatchEnded   bool         `json:"matchEnded"`
	Toss         tossField    `json:"toss"`
	Series       string       `json:"series"`
}

type teamRecord struct {
	Name      string `json:"name"`
	ShortName string `json:"shortname"`
	Img       string `json:"img"`
}

type scoreEntry struct {
	Runs    int     `json:"r"`
	Wickets int     `json:"w"`
	Overs   float64 `json:"o"`
	Inning  string  `json:"inning"`
}

// flexString accepts a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*f = flexString(strconv.FormatInt(i, 10))
		return nil
	}
	*f = flexString(n.String())
	return nil
}

// tossField accepts either a plain string or an object with a text field.
type tossField string

func (t *tossField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = tossField(s)
		return nil
	}
	var obj struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return err
	}
	*t = tossField(obj.Text)
	return nil
}
