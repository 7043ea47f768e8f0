package demand

import (
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"

	"github.com/theoremus-urban-solutions/entd-longdistance/formatter"
)

// Output file names.
const (
	FileAct                = "act.csv"
	FileActCity            = "actCity.csv"
	FilePopActivities      = "popActivities.csv"
	FileResidence          = "residence.csv"
	FileCities             = "france.csv"
	FileProbByActivity     = "destinationsProbDist_by_activity.csv"
	FileProbabilities      = "destinationsProbDist.csv"
	FileAgents             = "agents.csv"
	FileSecondaryLocations = "secondary_locations.csv"
)

// OutputSeparator separates the fields of every demand output.
const OutputSeparator = ','

// WriteOutputs writes every table into dir and copies the agents file
// through when agentsPath is set. It returns the written paths.
func WriteOutputs(dir string, out *Outputs, agentsPath string) ([]string, error) {
	tables := []struct {
		name   string
		header []string
		rows   [][]string
	}{
		{FileAct, []string{"activity_id", "activity_name"}, actRows(out.Activities)},
		{FileActCity, []string{"city_id", "activity_id", "activity_cost"}, actCityRows(out.ActCity)},
		{FilePopActivities, []string{"agent_id", "activity_id", "time_duration", "perc_of_time_target", "duration_discomfort"}, popActivityRows(out.PopActivities)},
		{FileResidence, []string{"agent_id", "city", "size"}, residenceRows(out.Residence)},
		{FileCities, []string{"city_id", "code", "city_name", "lat", "lng", "country", "population"}, cityRows(out.Cities)},
		{FileProbByActivity, []string{"from_id", "to_id", "activity_id", "probability"}, probByActivityRows(out.ProbByActivity)},
		{FileProbabilities, []string{"from_id", "to_id", "probability"}, probabilityRows(out.Probabilities)},
		{FileSecondaryLocations, []string{
			"destination_id", "location_id", "enterprise_id", "activity_type", "commune_id",
			"x", "y", "offers_vacation", "offers_other",
		}, secondaryRows(out.SecondaryLocations)},
	}

	written := make([]string, 0, len(tables)+1)
	for _, t := range tables {
		path := filepath.Join(dir, t.name)
		err := formatter.WriteFile(path, func(w io.Writer) error {
			return formatter.WriteRecords(w, OutputSeparator, t.header, t.rows)
		})
		if err != nil {
			return written, err
		}
		written = append(written, path)
	}

	if agentsPath != "" {
		path := filepath.Join(dir, FileAgents)
		if err := copyFile(agentsPath, path); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "open %s", src)
	}
	defer in.Close()
	return formatter.WriteFile(dst, func(w io.Writer) error {
		_, err := io.Copy(w, in)
		return err
	})
}

func itoa(v int) string { return strconv.Itoa(v) }

func actRows(acts []ActivityType) [][]string {
	rows := make([][]string, len(acts))
	for i, a := range acts {
		rows[i] = []string{itoa(a.ID), string(a.Purpose)}
	}
	return rows
}

func actCityRows(acs []ActCity) [][]string {
	rows := make([][]string, len(acs))
	for i, a := range acs {
		rows[i] = []string{itoa(a.CityID), itoa(a.ActivityID), itoa(a.Cost)}
	}
	return rows
}

func popActivityRows(pas []PopActivity) [][]string {
	rows := make([][]string, len(pas))
	for i, p := range pas {
		rows[i] = []string{
			itoa(p.AgentID), itoa(p.ActivityID), formatter.FormatFloat(p.DurationMinutes),
			formatter.FormatFloat(p.PercOfTimeTarget), formatter.FormatFloat(p.DurationDiscomfort),
		}
	}
	return rows
}

func residenceRows(rs []Residence) [][]string {
	rows := make([][]string, len(rs))
	for i, r := range rs {
		rows[i] = []string{itoa(r.AgentID), r.CityName, formatter.FormatFloat(r.Size)}
	}
	return rows
}

func cityRows(cs []City) [][]string {
	rows := make([][]string, len(cs))
	for i, c := range cs {
		rows[i] = []string{
			itoa(c.ID), c.Code, c.Name, formatter.FormatFloat(c.Lat), formatter.FormatFloat(c.Lng),
			c.Country, formatter.FormatFloat(c.Population),
		}
	}
	return rows
}

func probByActivityRows(ps []DestinationProbability) [][]string {
	rows := make([][]string, len(ps))
	for i, p := range ps {
		rows[i] = []string{itoa(p.FromID), itoa(p.ToID), itoa(p.ActivityID), formatter.FormatFloat(p.Probability)}
	}
	return rows
}

func probabilityRows(ps []ODProbability) [][]string {
	rows := make([][]string, len(ps))
	for i, p := range ps {
		rows[i] = []string{itoa(p.FromID), itoa(p.ToID), formatter.FormatFloat(p.Probability)}
	}
	return rows
}

func secondaryRows(ls []SecondaryLocation) [][]string {
	rows := make([][]string, len(ls))
	for i, l := range ls {
		rows[i] = []string{
			itoa(l.DestinationID), l.LocationID, l.EnterpriseID, l.ActivityType, l.CommuneID,
			formatter.FormatFloat(l.X), formatter.FormatFloat(l.Y),
			strconv.FormatBool(l.OffersVacation), strconv.FormatBool(l.OffersOther),
		}
	}
	return rows
}
