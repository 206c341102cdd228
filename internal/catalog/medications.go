package catalog

import "medgpt-backend/internal/models"

const (
	onceDaily     = "Take one tablet by mouth once daily. May be taken with or without food."
	roomTemp      = "Store at room temperature 20-25°C (68-77°F). Keep container tightly closed and protect from moisture."
	consultDoctor = "Consult your healthcare provider before use"
)

// Medications returns the built-in medication catalog. The returned slice
// is freshly allocated on every call.
func Medications() []models.Medication {
	return []models.Medication{
		{
			ID:               "123",
			Name:             "Lisinopril",
			BrandName:        "Zestril",
			GenericName:      "Lisinopril",
			Category:         "Blood Pressure",
			DrugClass:        "ACE Inhibitor",
			Description:      "Lisinopril is an angiotensin-converting enzyme (ACE) inhibitor used to treat high blood pressure (hypertension) and heart failure. It works by relaxing blood vessels so blood can flow more easily, which helps to lower blood pressure and decrease the workload on the heart.",
			InteractionCount: 12,
			Ingredients:      []string{"Lisinopril (active ingredient)", "Calcium phosphate", "Mannitol", "Corn starch", "Magnesium stearate"},
			SideEffects: models.SideEffects{
				Common:  []string{"Dizziness", "Headache", "Dry cough", "Fatigue", "Nausea"},
				Serious: []string{"Swelling of face, lips, tongue, or throat (angioedema)", "Difficulty breathing or swallowing", "Decreased urination", "Persistent sore throat with fever", "Irregular heartbeat"},
			},
			Dosages: []models.Dosage{
				{Form: "Tablet", Strength: "5 mg", Instructions: onceDaily},
				{Form: "Tablet", Strength: "10 mg", Instructions: onceDaily},
				{Form: "Tablet", Strength: "20 mg", Instructions: onceDaily},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Potassium supplements", Severity: models.SeverityModerate, Description: "May cause high potassium levels in the blood. Monitoring recommended."},
				{Medication: "Lithium", Severity: models.SeverityModerate, Description: "May increase lithium levels, potentially leading to toxicity."},
				{Medication: "NSAIDs (e.g., ibuprofen)", Severity: models.SeverityModerate, Description: "May reduce the blood pressure-lowering effects of lisinopril."},
				{Medication: "Aliskiren", Severity: models.SeveritySevere, Description: "Combination increases risk of kidney problems, high potassium levels, and low blood pressure."},
			},
			Contraindications: []string{
				"History of angioedema related to previous ACE inhibitor therapy",
				"Hereditary or idiopathic angioedema",
				"Pregnancy (2nd and 3rd trimesters)",
				"Concomitant use with aliskiren in diabetic patients",
			},
			PregnancyCategory:   "Category D (Positive evidence of risk to human fetus)",
			BreastfeedingSafety: "Compatible with breastfeeding, but infant should be monitored for possible effects",
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "high", SideEffectSeverity: models.SeverityModerate, Cost: "low",
				AdministrationRoute: "Oral", PrescriptionRequired: true,
			},
		},
		{
			ID:               "456",
			Name:             "Atorvastatin",
			BrandName:        "Lipitor",
			GenericName:      "Atorvastatin Calcium",
			Category:         "Cholesterol",
			DrugClass:        "Statin",
			Description:      "Atorvastatin is used to lower cholesterol and triglycerides in the blood. It helps reduce the risk of heart attack, stroke, and other complications.",
			InteractionCount: 15,
			Ingredients:      []string{"Atorvastatin calcium (active)", "Calcium carbonate", "Lactose monohydrate"},
			SideEffects: models.SideEffects{
				Common:  []string{"Muscle pain", "Joint pain", "Digestive issues", "Cold-like symptoms"},
				Serious: []string{"Unexplained muscle weakness or tenderness (rhabdomyolysis)", "Dark urine", "Yellowing of the skin or eyes"},
			},
			Dosages: []models.Dosage{
				{Form: "Tablet", Strength: "10 mg", Instructions: onceDaily},
				{Form: "Tablet", Strength: "20 mg", Instructions: onceDaily},
				{Form: "Tablet", Strength: "40 mg", Instructions: onceDaily},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Clarithromycin", Severity: models.SeveritySevere, Description: "Raises atorvastatin levels and the risk of muscle damage."},
				{Medication: "Grapefruit juice (large amounts)", Severity: models.SeverityMild, Description: "May increase atorvastatin levels."},
			},
			Contraindications:   []string{"Active liver disease", "Pregnancy", "Breastfeeding"},
			PregnancyCategory:   "Category X (Contraindicated in pregnancy)",
			BreastfeedingSafety: "Not recommended while breastfeeding",
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "high", SideEffectSeverity: models.SeverityModerate, Cost: "medium",
				AdministrationRoute: "Oral", PrescriptionRequired: true,
			},
		},
		{
			ID:               "789",
			Name:             "Metformin",
			BrandName:        "Glucophage",
			GenericName:      "Metformin HCl",
			Category:         "Diabetes",
			DrugClass:        "Biguanide",
			Description:      "Metformin is used to control blood sugar levels in people with type 2 diabetes. It works by improving the body's response to insulin.",
			InteractionCount: 5,
			Ingredients:      []string{"Metformin hydrochloride (active)", "Povidone", "Magnesium stearate"},
			SideEffects: models.SideEffects{
				Common:  []string{"Nausea", "Diarrhea", "Stomach upset", "Metallic taste"},
				Serious: []string{"Lactic acidosis (muscle pain, trouble breathing, unusual sleepiness)", "Vitamin B12 deficiency with long-term use"},
			},
			Dosages: []models.Dosage{
				{Form: "Tablet", Strength: "500 mg", Instructions: "Take by mouth with meals, usually twice daily."},
				{Form: "Extended-release tablet", Strength: "750 mg", Instructions: "Take once daily with the evening meal. Do not crush or chew."},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Iodinated contrast agents", Severity: models.SeveritySevere, Description: "Stop metformin before imaging with contrast to avoid lactic acidosis."},
				{Medication: "Alcohol", Severity: models.SeverityModerate, Description: "Increases the risk of lactic acidosis."},
			},
			Contraindications:   []string{"Severe kidney impairment (eGFR below 30)", "Metabolic acidosis, including diabetic ketoacidosis"},
			PregnancyCategory:   "Category B (No evidence of risk in humans)",
			BreastfeedingSafety: "Generally considered compatible with breastfeeding",
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "high", SideEffectSeverity: models.SeverityMild, Cost: "low",
				AdministrationRoute: "Oral", PrescriptionRequired: true,
			},
		},
		{
			ID:               "012",
			Name:             "Levothyroxine",
			BrandName:        "Synthroid",
			GenericName:      "Levothyroxine",
			Category:         "Thyroid",
			DrugClass:        "Hormone",
			Description:      "Levothyroxine is a thyroid hormone replacement used to treat hypothyroidism. It works by replacing the natural thyroid hormone that your body doesn't make.",
			InteractionCount: 10,
			Ingredients:      []string{"Levothyroxine sodium (active)", "Acacia", "Lactose monohydrate"},
			SideEffects: models.SideEffects{
				Common:  []string{"Hair loss in the first months", "Heat intolerance", "Nervousness"},
				Serious: []string{"Chest pain or rapid heartbeat", "Shortness of breath", "Seizures"},
			},
			Dosages: []models.Dosage{
				{Form: "Tablet", Strength: "50 mcg", Instructions: "Take once daily on an empty stomach, 30 to 60 minutes before breakfast."},
				{Form: "Tablet", Strength: "100 mcg", Instructions: "Take once daily on an empty stomach, 30 to 60 minutes before breakfast."},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Calcium or iron supplements", Severity: models.SeverityModerate, Description: "Reduce absorption. Separate doses by at least 4 hours."},
				{Medication: "Warfarin", Severity: models.SeverityModerate, Description: "May increase the anticoagulant effect of warfarin."},
			},
			Contraindications:   []string{"Untreated adrenal insufficiency", "Acute myocardial infarction"},
			PregnancyCategory:   "Category A (No risk in controlled human studies)",
			BreastfeedingSafety: "Compatible with breastfeeding",
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "high", SideEffectSeverity: models.SeverityMild, Cost: "low",
				AdministrationRoute: "Oral", PrescriptionRequired: true,
			},
		},
		{
			ID:               "345",
			Name:             "Omeprazole",
			BrandName:        "Prilosec",
			GenericName:      "Omeprazole",
			Category:         "Gastrointestinal",
			DrugClass:        "Proton Pump Inhibitor",
			Description:      "Omeprazole is a proton pump inhibitor that decreases the amount of acid produced in the stomach. It's used to treat acid reflux and ulcers.",
			InteractionCount: 15,
			Ingredients:      []string{"Omeprazole (active)", "Hypromellose", "Sugar spheres"},
			SideEffects: models.SideEffects{
				Common:  []string{"Headache", "Abdominal pain", "Nausea", "Gas"},
				Serious: []string{"Severe diarrhea (C. difficile infection)", "Low magnesium levels", "Bone fractures with long-term use"},
			},
			Dosages: []models.Dosage{
				{Form: "Delayed-release capsule", Strength: "20 mg", Instructions: "Take once daily before a meal. Swallow whole."},
				{Form: "Delayed-release capsule", Strength: "40 mg", Instructions: "Take once daily before a meal. Swallow whole."},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Clopidogrel", Severity: models.SeverityModerate, Description: "May reduce the antiplatelet effect of clopidogrel."},
				{Medication: "Methotrexate", Severity: models.SeverityModerate, Description: "May raise methotrexate levels."},
			},
			Contraindications:   []string{"Known hypersensitivity to benzimidazoles", "Concomitant use with rilpivirine"},
			PregnancyCategory:   "Category C (Risk cannot be ruled out)",
			BreastfeedingSafety: "Low levels in breast milk; generally considered acceptable",
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "high", SideEffectSeverity: models.SeverityMild, Cost: "low",
				AdministrationRoute: "Oral", PrescriptionRequired: false,
			},
		},
		{
			ID:               "678",
			Name:             "Amlodipine",
			BrandName:        "Norvasc",
			GenericName:      "Amlodipine Besylate",
			Category:         "Blood Pressure",
			DrugClass:        "Calcium Channel Blocker",
			Description:      "Amlodipine is a calcium channel blocker used to treat high blood pressure and certain types of chest pain. It works by relaxing blood vessels.",
			InteractionCount: 7,
			Ingredients:      []string{"Amlodipine besylate (active)", "Microcrystalline cellulose", "Magnesium stearate"},
			SideEffects: models.SideEffects{
				Common:  []string{"Swelling of ankles", "Flushing", "Mild dizziness"},
				Serious: []string{"Fainting", "Worsening chest pain", "Fast or pounding heartbeat"},
			},
			Dosages: []models.Dosage{
				{Form: "Tablet", Strength: "5 mg", Instructions: onceDaily},
				{Form: "Tablet", Strength: "10 mg", Instructions: onceDaily},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Simvastatin (above 20 mg)", Severity: models.SeverityModerate, Description: "Raises simvastatin levels and the risk of muscle problems."},
			},
			Contraindications:   []string{"Severe hypotension", "Cardiogenic shock"},
			PregnancyCategory:   "Category C (Risk cannot be ruled out)",
			BreastfeedingSafety: consultDoctor,
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "high", SideEffectSeverity: models.SeverityMild, Cost: "low",
				AdministrationRoute: "Oral", PrescriptionRequired: true,
			},
		},
		{
			ID:               "901",
			Name:             "Sertraline",
			BrandName:        "Zoloft",
			GenericName:      "Sertraline HCl",
			Category:         "Mental Health",
			DrugClass:        "SSRI",
			Description:      "Sertraline is a selective serotonin reuptake inhibitor used to treat depression, anxiety disorders, and obsessive-compulsive disorder.",
			InteractionCount: 20,
			Ingredients:      []string{"Sertraline hydrochloride (active)", "Dibasic calcium phosphate", "Microcrystalline cellulose"},
			SideEffects: models.SideEffects{
				Common:  []string{"Nausea", "Insomnia", "Dry mouth", "Sexual dysfunction"},
				Serious: []string{"Suicidal thoughts, especially in young adults", "Serotonin syndrome (agitation, fever, fast heartbeat)", "Unusual bleeding"},
			},
			Dosages: []models.Dosage{
				{Form: "Tablet", Strength: "50 mg", Instructions: "Take once daily, morning or evening."},
				{Form: "Tablet", Strength: "100 mg", Instructions: "Take once daily, morning or evening."},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "MAO inhibitors", Severity: models.SeveritySevere, Description: "Risk of life-threatening serotonin syndrome. Do not combine."},
				{Medication: "NSAIDs or aspirin", Severity: models.SeverityModerate, Description: "Increased risk of bleeding."},
			},
			Contraindications:   []string{"Use with or within 14 days of MAO inhibitors", "Concomitant use with pimozide"},
			PregnancyCategory:   "Category C (Risk cannot be ruled out)",
			BreastfeedingSafety: "Generally considered compatible with breastfeeding",
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "moderate", SideEffectSeverity: models.SeverityModerate, Cost: "low",
				AdministrationRoute: "Oral", PrescriptionRequired: true,
			},
		},
		{
			ID:               "234",
			Name:             "Albuterol",
			BrandName:        "ProAir HFA",
			GenericName:      "Albuterol Sulfate",
			Category:         "Respiratory",
			DrugClass:        "Bronchodilator",
			Description:      "Albuterol is a short-acting bronchodilator that relaxes the airways to relieve wheezing and shortness of breath from asthma or COPD.",
			InteractionCount: 6,
			Ingredients:      []string{"Albuterol sulfate (active)", "HFA-134a propellant", "Ethanol"},
			SideEffects: models.SideEffects{
				Common:  []string{"Shakiness", "Nervousness", "Headache", "Fast heartbeat"},
				Serious: []string{"Worsening breathing right after use (paradoxical bronchospasm)", "Chest pain", "Low potassium"},
			},
			Dosages: []models.Dosage{
				{Form: "Inhaler", Strength: "90 mcg per actuation", Instructions: "Inhale 1 to 2 puffs every 4 to 6 hours as needed."},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Non-selective beta blockers", Severity: models.SeverityModerate, Description: "May block the bronchodilating effect of albuterol."},
			},
			Contraindications:   []string{"Hypersensitivity to albuterol"},
			PregnancyCategory:   "Category C (Risk cannot be ruled out)",
			BreastfeedingSafety: consultDoctor,
			StorageInstructions: "Store at room temperature. Do not puncture or expose the canister to heat above 49°C (120°F).",
			Profile: models.ComparisonProfile{
				Effectiveness: "high", SideEffectSeverity: models.SeverityMild, Cost: "medium",
				AdministrationRoute: "Inhalation", PrescriptionRequired: true,
			},
		},
		{
			ID:               "567",
			Name:             "Gabapentin",
			BrandName:        "Neurontin",
			GenericName:      "Gabapentin",
			Category:         "Neurology",
			DrugClass:        "Anticonvulsant",
			Description:      "Gabapentin is an anticonvulsant used to treat partial seizures and nerve pain from shingles (postherpetic neuralgia).",
			InteractionCount: 9,
			Ingredients:      []string{"Gabapentin (active)", "Lactose", "Corn starch", "Talc"},
			SideEffects: models.SideEffects{
				Common:  []string{"Drowsiness", "Dizziness", "Unsteadiness", "Fatigue"},
				Serious: []string{"Breathing problems, especially with opioids", "Mood changes or suicidal thoughts", "Severe allergic reaction"},
			},
			Dosages: []models.Dosage{
				{Form: "Capsule", Strength: "300 mg", Instructions: "Take by mouth as directed, usually three times daily."},
				{Form: "Tablet", Strength: "600 mg", Instructions: "Take by mouth as directed, usually three times daily."},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Opioids", Severity: models.SeveritySevere, Description: "Increased risk of severe drowsiness and respiratory depression."},
				{Medication: "Antacids containing aluminum or magnesium", Severity: models.SeverityMild, Description: "Reduce gabapentin absorption. Take gabapentin 2 hours after the antacid."},
			},
			Contraindications:   []string{"Hypersensitivity to gabapentin"},
			PregnancyCategory:   "Category C (Risk cannot be ruled out)",
			BreastfeedingSafety: consultDoctor,
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "moderate", SideEffectSeverity: models.SeverityModerate, Cost: "low",
				AdministrationRoute: "Oral", PrescriptionRequired: true,
			},
		},
		{
			ID:               "890",
			Name:             "Hydrochlorothiazide",
			BrandName:        "Microzide",
			GenericName:      "Hydrochlorothiazide",
			Category:         "Blood Pressure",
			DrugClass:        "Diuretic",
			Description:      "Hydrochlorothiazide is a thiazide diuretic that helps the kidneys remove salt and water, used to treat high blood pressure and fluid retention.",
			InteractionCount: 11,
			Ingredients:      []string{"Hydrochlorothiazide (active)", "Lactose", "Magnesium stearate"},
			SideEffects: models.SideEffects{
				Common:  []string{"Frequent urination", "Dizziness", "Increased sensitivity to sunlight"},
				Serious: []string{"Low sodium or potassium", "Eye pain or vision changes", "Severe skin reaction"},
			},
			Dosages: []models.Dosage{
				{Form: "Tablet", Strength: "12.5 mg", Instructions: "Take once daily in the morning."},
				{Form: "Tablet", Strength: "25 mg", Instructions: "Take once daily in the morning."},
			},
			KnownInteractions: []models.KnownInteraction{
				{Medication: "Lithium", Severity: models.SeveritySevere, Description: "Reduces lithium clearance and may cause toxicity."},
				{Medication: "NSAIDs", Severity: models.SeverityModerate, Description: "May reduce the diuretic and blood pressure effect."},
			},
			Contraindications:   []string{"Inability to produce urine (anuria)", "Sulfonamide allergy"},
			PregnancyCategory:   "Category B (No evidence of risk in humans)",
			BreastfeedingSafety: consultDoctor,
			StorageInstructions: roomTemp,
			Profile: models.ComparisonProfile{
				Effectiveness: "moderate", SideEffectSeverity: models.SeverityMild, Cost: "low",
				AdministrationRoute: "Oral", PrescriptionRequired: true,
			},
		},
	}
}
