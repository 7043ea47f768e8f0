package demand

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theoremus-urban-solutions/entd-longdistance/survey"
)

func TestAgeClass(t *testing.T) {
	tests := []struct {
		age  int
		want int
	}{
		{-1, 0},
		{0, 1},
		{24, 1},
		{25, 2},
		{44, 2},
		{45, 3},
		{64, 3},
		{65, 4},
		{100, 4},
		{117, 4},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, AgeClass(tt.age), "age %d", tt.age)
	}
}

func TestIncomeClass(t *testing.T) {
	tests := []struct {
		income float64
		want   int
	}{
		{-1, 0},
		{0, 1},
		{8293, 1},
		{8293.4, 1},
		{8293.6, 2},
		{10389, 2},
		{11666, 3},
		{13266, 4},
		{13267, 5},
		{25957, 5},
		{1e6, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IncomeClass(tt.income), "income %v", tt.income)
	}
	assert.Equal(t, len(IncomeBounds), IncomeClass(math.NaN()))
}

func TestAgentDefinition(t *testing.T) {
	assert.Equal(t, "male-2-2", AgentDefinition(Agent{LAge: 25, LIncome: 8924, Male: true}))
	assert.Equal(t, "female-4-5", AgentDefinition(Agent{LAge: 65, LIncome: 13267}))
	assert.Equal(t, "female-1-1", AgentDefinition(Agent{LAge: 0, LIncome: 0}))
	assert.Equal(t, "male-0-0", AgentDefinition(Agent{LAge: 30, LIncome: 5, Male: true}))
}

func TestClassifyPopulation(t *testing.T) {
	persons := []SyntheticPerson{
		{PersonID: 1, HouseholdID: 1, Age: 30, Sex: survey.SexMale},
		{PersonID: 2, HouseholdID: 1, Age: 10, Sex: survey.SexFemale},
		{PersonID: 3, HouseholdID: 2, Age: 70, Sex: survey.SexFemale},
		{PersonID: 4, HouseholdID: 9, Age: 30, Sex: survey.SexMale},
	}
	households := []SyntheticHousehold{
		{HouseholdID: 1, Income: 9000},
		{HouseholdID: 2, Income: 30000},
	}
	agents := []Agent{
		{AgentID: 0, LAge: 25, LIncome: 8924, Male: true},
		{AgentID: 7, LAge: 25, LIncome: 8924, Male: true},
		{AgentID: 1, LAge: 0, LIncome: 8924},
		{AgentID: 2, LAge: 65, LIncome: 13267},
	}

	got, unmatched := ClassifyPopulation(persons, households, agents)

	assert.Equal(t, 1, unmatched)
	assert.Equal(t, []PersonAgent{
		{PersonID: 1, HouseholdID: 1, AgentID: 0},
		{PersonID: 2, HouseholdID: 1, AgentID: 1},
		{PersonID: 3, HouseholdID: 2, AgentID: 2},
		{PersonID: 4, HouseholdID: 9, AgentID: NoAgent},
	}, got)
}
