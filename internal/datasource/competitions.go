package datasource

import (
	"fmt"
	"net/url"
	"strings"
)

// Competition identifies one result page on soccerstats
type Competition struct {
	Name string `json:"name"`
	Key  string `json:"key"`
}

// DefaultCompetitions lists the competitions ingested when the source config names none
var DefaultCompetitions = []Competition{
	{Name: "Brazil Serie A", Key: "brazil"},
	{Name: "Brazil Serie B", Key: "brazil2"},
	{Name: "Austria Bundesliga", Key: "austria"},
	{Name: "Argentina Primera", Key: "argentina"},
	{Name: "Argentina Primera Nacional", Key: "argentina2"},
	{Name: "Belgium Pro League", Key: "belgium"},
	{Name: "Australia A-League", Key: "australia"},
	{Name: "Switzerland Super League", Key: "switzerland"},
	{Name: "Czech First League", Key: "czechrepublic"},
	{Name: "Germany Bundesliga", Key: "germany"},
	{Name: "Germany 2. Bundesliga", Key: "germany2"},
	{Name: "Germany 3. Liga", Key: "germany3"},
	{Name: "Denmark Superliga", Key: "denmark"},
	{Name: "England Premier League", Key: "england"},
	{Name: "England D2", Key: "england2"},
	{Name: "England D3", Key: "england3"},
	{Name: "England D4", Key: "england4"},
	{Name: "England D5", Key: "england5"},
	{Name: "England Premier League 2", Key: "england15"},
	{Name: "Spain La Liga", Key: "spain"},
	{Name: "Spain Segunda", Key: "spain2"},
	{Name: "France Ligue 1", Key: "france"},
	{Name: "France Ligue 2", Key: "france2"},
	{Name: "Greece Super League", Key: "greece"},
	{Name: "Netherlands Eredivisie", Key: "netherlands"},
	{Name: "Netherlands Eerste Divisie", Key: "netherlands2"},
	{Name: "Italy Serie A", Key: "italy"},
	{Name: "Italy Serie B", Key: "italy2"},
	{Name: "Japan J1 League", Key: "japan"},
	{Name: "Norway Eliteserien", Key: "norway"},
	{Name: "Poland Ekstraklasa", Key: "poland"},
	{Name: "Portugal Primeira Liga", Key: "portugal"},
	{Name: "Portugal Liga 2", Key: "portugal2"},
	{Name: "Scotland Premiership", Key: "scotland"},
	{Name: "Scotland Championship", Key: "scotland2"},
	{Name: "Sweden Allsvenskan", Key: "sweden"},
	{Name: "Turkey Super Lig", Key: "turkey"},
	{Name: "USA MLS", Key: "usa"},
	{Name: "USA USL Championship", Key: "usa2"},
	{Name: "Canada Premier League", Key: "canada"},
	{Name: "Chile Primera", Key: "chile"},
}

// CompetitionByKey resolves a configured key or display name
func CompetitionByKey(key string) (Competition, bool) {
	for _, c := range DefaultCompetitions {
		if c.Key == key || strings.EqualFold(c.Name, key) {
			return c, true
		}
	}
	return Competition{}, false
}

// ResolveCompetitions maps configured keys to competitions, falling back to the full list
func ResolveCompetitions(keys []string) ([]Competition, error) {
	if len(keys) == 0 {
		out := make([]Competition, len(DefaultCompetitions))
		copy(out, DefaultCompetitions)
		return out, nil
	}

	out := make([]Competition, 0, len(keys))
	for _, key := range keys {
		c, ok := CompetitionByKey(key)
		if !ok {
			return nil, fmt.Errorf("unknown competition: %s", key)
		}
		out = append(out, c)
	}
	return out, nil
}

// ResultsURL builds the by-date results page for a competition
func ResultsURL(baseURL string, c Competition) string {
	q := url.Values{}
	q.Set("league", c.Key)
	q.Set("pmtype", "bydate")
	return strings.TrimRight(baseURL, "/") + "/results.asp?" + q.Encode()
}
