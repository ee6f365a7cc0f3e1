package knowledge

const BuiltinSource = "builtin"

// builtinCorpus is the guideline text served for retrieval when no corpus
// file is available.
const builtinCorpus = `PREGNANCY RISK ASSESSMENT KNOWLEDGE BASE

HIGH RISK SYMPTOMS:
- Heavy vaginal bleeding with cramping
- Severe abdominal pain
- Blurry vision with headache and swelling
- Fever over 38.5°C with chills
- No fetal movement after 28 weeks
- Severe continuous headache with vision changes

MEDIUM RISK SYMPTOMS:
- Persistent vomiting more than 3 times per day
- Elevated blood pressure (140/90 or higher)
- Mild vaginal bleeding in 2nd/3rd trimester
- Decreased fetal movement
- Persistent headaches

LOW RISK SYMPTOMS:
- Mild nausea
- Light spotting in first trimester
- Mild back pain
- Constipation and gas
- Fatigue
- Breast tenderness
`

// Builtin returns the static table used whenever no usable file is found.
// Each call returns a fresh copy.
func Builtin() *Base {
	return &Base{
		High: []string{
			"heavy vaginal bleeding",
			"severe abdominal pain",
			"severe headaches",
			"vision changes",
			"difficulty breathing",
			"chest pain",
			"fever >38.5°C",
			"no fetal movement",
			"severe swelling",
		},
		Moderate: []string{
			"persistent vomiting",
			"elevated blood pressure",
			"mild bleeding",
			"decreased fetal movement",
			"severe heartburn",
			"swollen hands/feet",
		},
		Low: []string{
			"mild nausea",
			"light spotting",
			"mild back pain",
			"constipation",
			"mild fatigue",
			"breast tenderness",
			"frequent urination",
		},
		Combinations: builtinCombinations(),
		HighPatterns: []Pattern{
			{"bleeding", "heavy"}, {"bleeding", "cramping"},
			{"abdominal pain", "severe"}, {"pain", "severe"},
			{"headache", "vision"}, {"headache", "severe", "blurry"},
			{"fever", "chills"}, {"fever", "high"},
			{"no movement", "fetal"}, {"reduced movement"},
			{"vision changes", "headache"}, {"swelling", "severe"},
		},
		ModeratePatterns: []Pattern{
			{"vomiting", "persistent"}, {"nausea", "severe"},
			{"bleeding", "spotting"}, {"bleeding", "light"},
			{"headache", "persistent"}, {"pressure", "high"},
			{"movement", "decreased"}, {"contractions"},
		},
		Corpus: builtinCorpus,
		Source: BuiltinSource,
	}
}

func builtinCombinations() []Combination {
	return []Combination{
		{
			Name:        "preeclampsia",
			Keywords:    []string{"headache", "vision", "swelling"},
			Rule:        RuleAll,
			Description: "symptoms consistent with preeclampsia",
			Advice:      "Monitor blood pressure and report any vision changes immediately",
		},
		{
			Name:        "possible_miscarriage",
			Keywords:    []string{"bleeding", "cramping", "pain"},
			Rule:        RuleMajority,
			MinMatches:  2,
			Description: "symptoms suggesting possible miscarriage",
			Advice:      "Avoid physical exertion and seek immediate evaluation",
		},
		{
			Name:        "possible_infection",
			Keywords:    []string{"fever", "discharge", "pain"},
			Rule:        RuleMajority,
			MinMatches:  2,
			Description: "symptoms indicating possible infection",
			Advice:      "Monitor temperature and seek immediate antibiotic evaluation",
		},
	}
}
