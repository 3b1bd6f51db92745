package decision

import (
	"regexp"
	"strings"

	"github.com/Veraticus/worth-it/internal/model"
)

const neutralScore = 5.0

// Facts is what every scorer reads. Summary is nil when no profile was supplied.
type Facts struct {
	Summary *model.Summary
	Input   model.PurchaseInput
	item    string
	purpose string
}

// NewFacts derives the scoring facts for an input, recomputing the profile summary.
func NewFacts(in model.PurchaseInput) *Facts {
	return &Facts{
		Input:   in,
		Summary: in.Summary(),
		item:    strings.ToLower(in.ItemName),
		purpose: strings.ToLower(in.Purpose),
	}
}

// costPercent returns the cost as a percentage of monthly net income.
func (f *Facts) costPercent() (float64, bool) {
	if f.Summary == nil || f.Summary.MonthlyNetIncome <= 0 {
		return 0, false
	}
	return f.Input.Cost * 100 / f.Summary.MonthlyNetIncome, true
}

// Scorer maps facts to a raw score. Results are clamped to [0,10] by the engine.
type Scorer func(f *Facts) float64

// DefaultScorers returns the registry of criterion scorers.
func DefaultScorers() map[model.CriterionID]Scorer {
	return map[model.CriterionID]Scorer{
		model.CriterionAffordability:           scoreAffordability,
		model.CriterionValueForMoney:           scoreValueForMoney,
		model.CriterionOpportunityCost:         scoreOpportunityCost,
		model.CriterionFinancialGoalAlignment:  scoreGoalAlignment,
		model.CriterionNecessity:               scoreNecessity,
		model.CriterionLongevity:               scoreLongevity,
		model.CriterionFrequencyOfUse:          scoreFrequency,
		model.CriterionEmotionalValue:          scoreEmotionalValue,
		model.CriterionSocialFactors:           scoreSocialFactors,
		model.CriterionBuyersRemorse:           scoreBuyersRemorse,
		model.CriterionFinancialRisk:           scoreFinancialRisk,
		model.CriterionAlternativeAvailability: scoreAlternativeAvailability,
	}
}

func clamp(score float64) float64 {
	switch {
	case score < 0:
		return 0
	case score > 10:
		return 10
	default:
		return score
	}
}

func keywords(words ...string) *regexp.Regexp {
	return regexp.MustCompile(`\b(` + strings.Join(words, "|") + `)\b`)
}

var (
	essentialWords = keywords(
		`grocer(y|ies)`, `food`, `medicine`, `medications?`, `prescriptions?`, `medical`, `doctor`, `health`,
		`rent`, `utilit(y|ies)`, `insurance`, `repairs?`, `replace(ment)?`, `broken`, `work`, `job`,
		`school`, `textbooks?`, `safety`, `baby`, `diapers?`, `soap`, `toilet`, `toothpaste`, `wipes`,
		`cleaning`, `disinfect\w*`, `commute`, `tires?`,
	)
	wantWords = keywords(
		`upgrade`, `luxury`, `designer`, `latest`, `newest`, `collect(ion|ible|ibles)?`, `want`,
		`fancy`, `premium`, `limited edition`, `gaming`,
	)
	durableWords = keywords(
		`laptop`, `computer`, `macbook`, `desk`, `chair`, `furniture`, `sofa`, `couch`, `mattress`,
		`bed`, `appliance`, `fridge`, `refrigerator`, `washer`, `dryer`, `tools?`, `drill`, `car`,
		`bikes?`, `bicycle`, `phone`, `tablet`, `camera`, `boots?`, `coat`, `jacket`, `watch`,
		`instrument`, `guitar`, `piano`,
	)
	consumableWords = keywords(
		`food`, `meals?`, `dinner`, `lunch`, `coffee`, `snacks?`, `drinks?`, `wine`, `beer`,
		`tickets?`, `concert`, `subscription`, `wipes`, `soap`, `candy`, `takeout`, `groceries`,
	)
	meaningfulWords = keywords(
		`gift`, `birthday`, `anniversary`, `celebrat\w*`, `wedding`, `hobby`, `passion`, `dream`,
		`family`, `memor(y|ies)`, `milestone`, `reward`,
	)
	impulseWords = keywords(
		`impulse`, `bored`, `boredom`, `sale`, `deal`, `discount`, `just because`, `treat myself`,
		`fomo`, `retail therapy`, `saw it`,
	)
	peerPressureWords = keywords(
		`everyone`, `friends have`, `all my friends`, `peer`, `trend(y|ing)?`, `influencer`,
		`keep up`, `fomo`, `status`, `show off`, `impress`,
	)
	sharedWords = keywords(
		`gift`, `family`, `share`, `sharing`, `together`, `friends?`, `party`, `wedding`,
		`celebrat\w*`, `host(ing)?`, `kids?`,
	)
)

func scoreAffordability(f *Facts) float64 {
	if f.Summary == nil {
		return neutralScore
	}
	pct, ok := f.costPercent()
	if !ok {
		return 0
	}
	switch {
	case pct <= 5:
		return 10
	case pct <= 10:
		return 8
	case pct <= 20:
		return 6
	case pct <= 30:
		return 4
	case pct <= 50:
		return 2
	default:
		return 0
	}
}

func scoreValueForMoney(f *Facts) float64 {
	if f.Input.Alternative == nil || f.Input.Alternative.Price <= 0 {
		return neutralScore
	}
	savings, cheaper := f.Input.CheaperAlternative()
	if !cheaper {
		return 9
	}
	score := 10 - savings/5
	if score > 8 {
		score = 8
	}
	return score
}

// emergencyFundPenalty is shared by the criteria that punish thin savings.
func emergencyFundPenalty(months float64) float64 {
	switch {
	case months < 1:
		return 5
	case months < 3:
		return 3
	case months < 6:
		return 1
	default:
		return 0
	}
}

func scoreOpportunityCost(f *Facts) float64 {
	if f.Summary == nil {
		return neutralScore
	}
	score := 10 - emergencyFundPenalty(f.Summary.EmergencyFundMonths)
	switch {
	case f.Summary.DebtToIncomeRatio > 0.20:
		score -= 3
	case f.Summary.DebtPayments > 0:
		score -= 2
	}
	return score
}

func scoreGoalAlignment(f *Facts) float64 {
	if f.Summary == nil || f.Input.Profile == nil {
		return neutralScore
	}
	pct, ok := f.costPercent()
	if !ok {
		pct = 100
	}

	switch f.Input.Profile.FinancialGoal {
	case model.GoalSave:
		switch {
		case pct <= 10:
			return 7
		case pct <= 25:
			return 5
		default:
			return 2
		}
	case model.GoalDebt:
		if f.Summary.DebtPayments > 0 {
			return 3
		}
		return 7
	case model.GoalInvest:
		if pct <= 10 {
			return 6
		}
		return 3
	case model.GoalBalance:
		if pct <= 20 {
			return 7
		}
		return 5
	default:
		return neutralScore
	}
}

func scoreNecessity(f *Facts) float64 {
	text := f.item + " " + f.purpose
	if strings.TrimSpace(text) == "" {
		return neutralScore
	}

	score := neutralScore
	switch {
	case essentialWords.MatchString(text):
		score = 9
	case wantWords.MatchString(text):
		score = 3
	}
	if f.Input.Frequency == model.FrequencyDaily {
		score++
	}
	return score
}

func scoreLongevity(f *Facts) float64 {
	switch {
	case f.item == "":
		return neutralScore
	case durableWords.MatchString(f.item):
		return 8
	case consumableWords.MatchString(f.item):
		return 3
	default:
		return neutralScore
	}
}

func scoreFrequency(f *Facts) float64 {
	switch f.Input.Frequency {
	case model.FrequencyDaily:
		return 10
	case model.FrequencyWeekly:
		return 8
	case model.FrequencyMonthly:
		return 6
	case model.FrequencyRarely:
		return 3
	case model.FrequencyOneTime:
		return 2
	default:
		return neutralScore
	}
}

func scoreEmotionalValue(f *Facts) float64 {
	switch {
	case f.purpose == "":
		return neutralScore
	case impulseWords.MatchString(f.purpose):
		return 3
	case meaningfulWords.MatchString(f.purpose):
		return 8
	default:
		return neutralScore
	}
}

func scoreSocialFactors(f *Facts) float64 {
	switch {
	case f.purpose == "":
		return neutralScore
	case peerPressureWords.MatchString(f.purpose):
		return 3
	case sharedWords.MatchString(f.purpose):
		return 7
	default:
		return neutralScore
	}
}

func scoreBuyersRemorse(f *Facts) float64 {
	score := neutralScore
	if f.Summary != nil {
		pct, ok := f.costPercent()
		switch {
		case !ok:
			score = 2
		case pct <= 5:
			score = 9
		case pct <= 10:
			score = 8
		case pct <= 20:
			score = 6
		case pct <= 35:
			score = 4
		default:
			score = 2
		}
	}

	switch f.Input.Frequency {
	case model.FrequencyRarely, model.FrequencyOneTime:
		score -= 2
	case model.FrequencyDaily, model.FrequencyWeekly:
		score++
	}
	return score
}

func scoreFinancialRisk(f *Facts) float64 {
	if f.Summary == nil {
		return neutralScore
	}
	score := 10 - emergencyFundPenalty(f.Summary.EmergencyFundMonths)
	switch dti := f.Summary.DebtToIncomeRatio; {
	case dti > 0.40:
		score -= 4
	case dti > 0.20:
		score -= 2
	case dti > 0:
		score--
	}
	return score
}

func scoreAlternativeAvailability(f *Facts) float64 {
	if f.Input.Alternative == nil || f.Input.Alternative.Price <= 0 {
		return neutralScore
	}
	savings, cheaper := f.Input.CheaperAlternative()
	switch {
	case !cheaper:
		return 8
	case savings >= 30:
		return 2
	case savings >= 10:
		return 4
	default:
		return 6
	}
}
