package domain

// Dimension names one of the eight cognitive axes tracked per learner. The
// set is closed: adding an axis means a schema change, not a runtime key.
type Dimension string

const (
	DimInstructionFlow     Dimension = "instruction_flow"
	DimInputPreference     Dimension = "input_preference"
	DimEngagementStyle     Dimension = "engagement_style"
	DimConceptType         Dimension = "concept_type"
	DimLearningAutonomy    Dimension = "learning_autonomy"
	DimMotivationType      Dimension = "motivation_type"
	DimFeedbackPreference  Dimension = "feedback_preference"
	DimComplexityTolerance Dimension = "complexity_tolerance"
)

// Categorical values per dimension.
const (
	FlowLinear      = "linear"
	FlowExploratory = "exploratory"

	InputVisual = "visual"
	InputVerbal = "verbal"

	EngagementPassive = "passive"
	EngagementActive  = "active"

	ConceptConcrete = "concrete"
	ConceptAbstract = "abstract"

	AutonomyGuided      = "guided"
	AutonomyIndependent = "independent"

	MotivationIntrinsic = "intrinsic"
	MotivationExtrinsic = "extrinsic"

	FeedbackImmediate = "immediate"
	FeedbackDelayed   = "delayed"

	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"

	// Mixed is the fallback value shared by every dimension except
	// complexity_tolerance, whose neutral value is "medium".
	Mixed = "mixed"
)

var dimensionDomains = map[Dimension][]string{
	DimInstructionFlow:     {FlowLinear, FlowExploratory, Mixed},
	DimInputPreference:     {InputVisual, InputVerbal, Mixed},
	DimEngagementStyle:     {EngagementPassive, EngagementActive, Mixed},
	DimConceptType:         {ConceptConcrete, ConceptAbstract, Mixed},
	DimLearningAutonomy:    {AutonomyGuided, AutonomyIndependent, Mixed},
	DimMotivationType:      {MotivationIntrinsic, MotivationExtrinsic, Mixed},
	DimFeedbackPreference:  {FeedbackImmediate, FeedbackDelayed, Mixed},
	DimComplexityTolerance: {ComplexityLow, ComplexityMedium, ComplexityHigh},
}

// AllDimensions returns the eight dimensions in their canonical order.
func AllDimensions() []Dimension {
	return []Dimension{
		DimInstructionFlow,
		DimInputPreference,
		DimEngagementStyle,
		DimConceptType,
		DimLearningAutonomy,
		DimMotivationType,
		DimFeedbackPreference,
		DimComplexityTolerance,
	}
}

// Domain returns the allowed categorical values for d, nil for an unknown
// dimension.
func (d Dimension) Domain() []string {
	return dimensionDomains[d]
}

// ValidValue reports whether v belongs to d's domain.
func (d Dimension) ValidValue(v string) bool {
	for _, allowed := range dimensionDomains[d] {
		if allowed == v {
			return true
		}
	}
	return false
}

// Resource types recorded on interactions and graph resources.
const (
	ResourceVideo       = "video"
	ResourceArticle     = "article"
	ResourceInteractive = "interactive"
	ResourceCodeExample = "code_example"
	ResourceQuiz        = "quiz"
	ResourceChat        = "chat"
)

// Mastery progression levels.
const (
	MasteryNotStarted = "not_started"
	MasteryLearning   = "learning"
	MasteryPracticing = "practicing"
	MasteryProficient = "proficient"
	MasteryMastered   = "mastered"
)
