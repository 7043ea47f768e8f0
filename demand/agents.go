package demand

import (
	"fmt"
	"math"
	"sort"

	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

// Class bounds of the agent definition, digitized right-closed: a value v
// falls in class i when bounds[i-1] < v <= bounds[i].
var (
	AgeBounds    = []float64{-1, 24, 44, 64, 100}
	IncomeBounds = []float64{-1, 8293, 10389, 11666, 13266, 25957}
)

const (
	MaxAge    = 100
	MaxIncome = 25957

	// NoAgent marks a person whose class has no agent.
	NoAgent = -1
)

// Lower bounds used by the agents file for each class, in class order
// starting at 1.
var (
	agentAgeLowerBounds    = []int64{0, 25, 45, 65}
	agentIncomeLowerBounds = []int64{0, 8924, 10390, 11667, 13267}
)

// PersonAgent is a synthetic person with its agent class.
type PersonAgent struct {
	PersonID    int64
	HouseholdID int64
	AgentID     int
}

// digitize returns the right-closed class of v; NaN falls past the last
// bound.
func digitize(v float64, bounds []float64) int {
	if math.IsNaN(v) {
		return len(bounds)
	}
	return sort.SearchFloat64s(bounds, v)
}

// AgeClass returns the class of an age capped at MaxAge.
func AgeClass(age int) int {
	return digitize(float64(min(age, MaxAge)), AgeBounds)
}

// IncomeClass returns the class of an income rounded half to even and
// capped at MaxIncome.
func IncomeClass(income float64) int {
	if math.IsNaN(income) {
		return digitize(income, IncomeBounds)
	}
	return digitize(math.Min(math.RoundToEven(income), MaxIncome), IncomeBounds)
}

// Definition is the "sex-age-income" key shared by persons and agents.
func Definition(sex survey.Sex, ageClass, incomeClass int) string {
	return fmt.Sprintf("%s-%d-%d", sex, ageClass, incomeClass)
}

// AgentDefinition derives the definition of an agents file row. Lower
// bounds outside the known classes yield class 0, which no person has.
func AgentDefinition(a Agent) string {
	sex := survey.SexFemale
	if a.Male {
		sex = survey.SexMale
	}
	return Definition(sex, lowerBoundClass(a.LAge, agentAgeLowerBounds), lowerBoundClass(a.LIncome, agentIncomeLowerBounds))
}

func lowerBoundClass(v int64, lowers []int64) int {
	for i, l := range lowers {
		if v == l {
			return i + 1
		}
	}
	return 0
}

// ClassifyPopulation joins persons to their household income and assigns
// the agent whose definition matches. The first agent wins when several
// share a definition. Persons without a match get NoAgent and are counted
// in unmatched.
func ClassifyPopulation(persons []SyntheticPerson, households []SyntheticHousehold, agents []Agent) (out []PersonAgent, unmatched int) {
	income := make(map[int64]float64, len(households))
	for _, h := range households {
		if _, ok := income[h.HouseholdID]; !ok {
			income[h.HouseholdID] = h.Income
		}
	}
	byDefinition := make(map[string]int, len(agents))
	for _, a := range agents {
		def := AgentDefinition(a)
		if _, ok := byDefinition[def]; !ok {
			byDefinition[def] = a.AgentID
		}
	}

	out = make([]PersonAgent, len(persons))
	for i, p := range persons {
		inc, ok := income[p.HouseholdID]
		if !ok {
			inc = math.NaN()
		}
		agent, ok := byDefinition[Definition(p.Sex, AgeClass(p.Age), IncomeClass(inc))]
		if !ok {
			agent = NoAgent
			unmatched++
		}
		out[i] = PersonAgent{PersonID: p.PersonID, HouseholdID: p.HouseholdID, AgentID: agent}
	}
	return out, unmatched
}
