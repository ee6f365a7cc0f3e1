package knowledge

// SymptomInfo describes one selectable symptom in the intake catalog.
type SymptomInfo struct {
	ID             int    `json:"id" yaml:"id"`
	Name           string `json:"name" yaml:"name"`
	Category       string `json:"category" yaml:"category"`
	Description    string `json:"description" yaml:"description"`
	SeverityWeight int    `json:"severityWeight" yaml:"severity_weight"`
}

var catalog = []SymptomInfo{
	{1, "Nausea", "digestive", "Feeling sick or queasy", 2},
	{2, "Morning Sickness", "digestive", "Nausea and vomiting in early pregnancy", 2},
	{3, "Fatigue", "general", "Extreme tiredness or exhaustion", 1},
	{4, "Breast Tenderness", "physical", "Sore or tender breasts", 1},
	{5, "Frequent Urination", "urinary", "Need to urinate more often", 1},
	{6, "Headache", "neurological", "Head pain or pressure", 3},
	{7, "Severe Headache", "neurological", "Intense head pain", 5},
	{8, "Bleeding", "reproductive", "Vaginal bleeding", 4},
	{9, "Severe Bleeding", "reproductive", "Heavy vaginal bleeding", 5},
	{10, "Cramping", "reproductive", "Abdominal or pelvic cramping", 3},
	{11, "Severe Cramping", "reproductive", "Intense abdominal pain", 5},
	{12, "Back Pain", "musculoskeletal", "Lower back discomfort", 2},
	{13, "Fever", "general", "Elevated body temperature", 4},
	{14, "Chills", "general", "Feeling cold or shivering", 3},
	{15, "Dizziness", "neurological", "Feeling lightheaded or unsteady", 3},
	{16, "Fainting", "neurological", "Loss of consciousness", 5},
	{17, "Chest Pain", "cardiovascular", "Pain or pressure in chest", 5},
	{18, "Difficulty Breathing", "respiratory", "Shortness of breath", 4},
	{19, "Swelling", "cardiovascular", "Swelling in hands, face, or legs", 3},
	{20, "Vision Changes", "neurological", "Blurred or changed vision", 4},
	{21, "Contractions", "reproductive", "Regular tightening of uterus", 4},
	{22, "Leaking Fluid", "reproductive", "Fluid leaking from vagina", 4},
	{23, "Decreased Fetal Movement", "fetal", "Baby moving less than usual", 4},
	{24, "Persistent Vomiting", "digestive", "Continuous vomiting", 4},
	{25, "Mood Changes", "psychological", "Emotional changes or depression", 2},
	{26, "Heartburn", "digestive", "Burning sensation in chest", 1},
	{27, "Constipation", "digestive", "Difficulty with bowel movements", 1},
	{28, "Leg Cramps", "musculoskeletal", "Muscle cramps in legs", 1},
	{29, "Varicose Veins", "cardiovascular", "Enlarged veins in legs", 1},
	{30, "Hemorrhoids", "digestive", "Swollen veins in rectum", 1},
}

// Catalog returns a copy of the symptom intake catalog.
func Catalog() []SymptomInfo {
	out := make([]SymptomInfo, len(catalog))
	copy(out, catalog)
	return out
}
