package services

import (
	"strings"
	"time"

	"golmaster-backend/models"
)

// fifaToISO2 maps FIFA federation codes to ISO 3166-1 alpha-2 codes for
// the flag emoji. England and Scotland have no ISO country of their own
// and share the GB flag (handled before this table).
var fifaToISO2 = map[string]string{
	"ALG": "DZ",
	"ARG": "AR",
	"AUS": "AU",
	"AUT": "AT",
	"BEL": "BE",
	"BRA": "BR",
	"CAN": "CA",
	"CIV": "CI",
	"COL": "CO",
	"CPV": "CV",
	"CRO": "HR",
	"CUW": "CW",
	"ECU": "EC",
	"EGY": "EG",
	"ESP": "ES",
	"FRA": "FR",
	"GER": "DE",
	"GHA": "GH",
	"HAI": "HT",
	"IRN": "IR",
	"JOR": "JO",
	"JPN": "JP",
	"KOR": "KR",
	"KSA": "SA",
	"MAR": "MA",
	"MEX": "MX",
	"NED": "NL",
	"NOR": "NO",
	"NZL": "NZ",
	"PAN": "PA",
	"PAR": "PY",
	"POR": "PT",
	"QAT": "QA",
	"RSA": "ZA",
	"SEN": "SN",
	"SUI": "CH",
	"TUN": "TN",
	"URU": "UY",
	"USA": "US",
	"UZB": "UZ",
}

func toFlagEmoji(iso2 string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(iso2) {
		b.WriteRune(rune(127397 + r))
	}
	return b.String()
}

// mapFlag resolves a FIFA team code to a flag glyph. Placeholder codes
// (the feed's "PO" playoff-slot prefix) and unknown codes map to an empty
// flag rather than an error; a match with a blank flag still renders.
func mapFlag(teamCode *string) string {
	code := ""
	if teamCode != nil {
		code = strings.ToUpper(*teamCode)
	}
	if code == "" || strings.HasPrefix(code, "PO") {
		return ""
	}
	if code == "ENG" || code == "SCO" {
		return toFlagEmoji("GB")
	}

	iso2, ok := fifaToISO2[code]
	if !ok {
		return ""
	}
	return toFlagEmoji(iso2)
}

// mapStatus folds the feed's free-text status into the three stored
// statuses. Unrecognized values become scheduled: misfiling a future match
// is recoverable, dropping one is not.
func mapStatus(status *string) string {
	value := "scheduled"
	if status != nil && *status != "" {
		value = strings.ToLower(*status)
	}
	switch value {
	case "finished", "complete", "full_time", "ft":
		return models.MatchStatusFinished
	case "live", "in_progress", "playing":
		return models.MatchStatusLive
	}
	return models.MatchStatusScheduled
}

func mapStage(round, groupName *string) string {
	value := ""
	if round != nil {
		value = strings.ToLower(*round)
	}
	switch value {
	case "group":
		if groupName != nil && *groupName != "" {
			return "group_" + strings.ToLower(*groupName)
		}
		return models.StageGroup
	case "r32":
		return models.StageRoundOf32
	case "r16":
		return models.StageRoundOf16
	case "qf":
		return models.StageQuarterFinal
	case "sf":
		return models.StageSemiFinal
	case "3rd":
		return models.StageThirdPlace
	case "final":
		return models.StageFinal
	}
	return models.StageGroup
}

func orTBD(s *string) string {
	if s == nil || *s == "" {
		return "TBD"
	}
	return *s
}

// MatchPayload is the internal match representation produced from one feed
// record. It carries every field the reconciler writes.
type MatchPayload struct {
	HomeTeamName string
	AwayTeamName string
	HomeTeamFlag string
	AwayTeamFlag string
	MatchDate    time.Time
	StadiumName  string
	StadiumCity  string
	Status       string
	Stage        string
	HomeScore    *int
	AwayScore    *int
}

// ToMatchPayload normalizes one raw feed record. Pure: no store access, no
// side effects. Missing names become the literal "TBD" so display code
// never deals with empty strings.
func ToMatchPayload(item FixtureRecord) MatchPayload {
	return MatchPayload{
		HomeTeamName: orTBD(item.HomeTeam),
		AwayTeamName: orTBD(item.AwayTeam),
		HomeTeamFlag: mapFlag(item.HomeTeamCode),
		AwayTeamFlag: mapFlag(item.AwayTeamCode),
		MatchDate:    item.KickoffUTC.UTC(),
		StadiumName:  orTBD(item.Stadium),
		StadiumCity:  orTBD(item.StadiumCity),
		Status:       mapStatus(item.Status),
		Stage:        mapStage(item.Round, item.GroupName),
		HomeScore:    item.HomeScore,
		AwayScore:    item.AwayScore,
	}
}
