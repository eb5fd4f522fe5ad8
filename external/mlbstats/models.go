package mlbstats

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/mlb-fantasy/internal/usecase"
)

type playersEnvelope struct {
	People []playerRecord `json:"people"`
}

type playerRecord struct {
	ID              int64           `json:"id"`
	FullName        string          `json:"fullName"`
	FirstName       string          `json:"firstName"`
	LastName        string          `json:"lastName"`
	UseName         string          `json:"useName"`
	BoxscoreName    string          `json:"boxscoreName"`
	NickName        string          `json:"nickName"`
	NameFirstLast   string          `json:"nameFirstLast"`
	FirstLastName   string          `json:"firstLastName"`
	LastFirstName   string          `json:"lastFirstName"`
	PrimaryNumber   string          `json:"primaryNumber"`
	PrimaryPosition primaryPosition `json:"primaryPosition"`
}

type primaryPosition struct {
	Code         string `json:"code"`
	Name         string `json:"name"`
	Type         string `json:"type"`
	Abbreviation string `json:"abbreviation"`
}

// searchFields lists the values a lookup term may match.
func (p playerRecord) searchFields() []string {
	return []string{
		strconv.FormatInt(p.ID, 10),
		p.FullName,
		p.FirstName,
		p.LastName,
		p.UseName,
		p.BoxscoreName,
		p.NickName,
		p.NameFirstLast,
		p.FirstLastName,
		p.LastFirstName,
		p.PrimaryNumber,
	}
}

// matches reports whether every term is a substring of at least one field.
func (p playerRecord) matches(terms []string) bool {
	if len(terms) == 0 {
		return false
	}
	fields := p.searchFields()
	for i := range fields {
		fields[i] = strings.ToLower(fields[i])
	}

	for _, term := range terms {
		found := false
		for _, field := range fields {
			if field != "" && strings.Contains(field, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

type peopleEnvelope struct {
	People []personStats `json:"people"`
}

type personStats struct {
	ID       int64       `json:"id"`
	FullName string      `json:"fullName"`
	Stats    []statEntry `json:"stats"`
}

type statEntry struct {
	Type   displayName `json:"type"`
	Group  displayName `json:"group"`
	Splits []statSplit `json:"splits"`
}

type displayName struct {
	DisplayName string `json:"displayName"`
}

type statSplit struct {
	Season string         `json:"season"`
	Stat   map[string]any `json:"stat"`
}

func lookupTerms(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

func (p playerRecord) external() usecase.ExternalPlayer {
	return usecase.ExternalPlayer{
		ID:              p.ID,
		FullName:        strings.TrimSpace(p.FullName),
		PrimaryPosition: strings.TrimSpace(p.PrimaryPosition.Abbreviation),
	}
}
