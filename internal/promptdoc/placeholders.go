package promptdoc

// Header placeholders for empty identity fields.
const (
	placeholderName        = "[Component Name]"
	placeholderDescription = "[Brief Description]"
	placeholderUseCase     = "[Core Use Case]"
)

// Field placeholders. Every empty field renders as one of these so the
// document reads as complete prose however little has been filled in.
const (
	noDescription    = "No description provided."
	noImpact         = "No impact specified."
	noPurpose        = "No purpose provided."
	noTransitions    = "No transitions specified."
	noCleanup        = "No cleanup logic specified."
	noTrigger        = "No trigger specified."
	notSpecified     = "Not specified"
	noAccessibility  = "Standard accessibility practices should be followed."
	noErrorHandling  = "No specific error handling strategy defined."
	noLoadingStates  = "No specific loading state strategy defined."
	noEdgeCases      = "No specific edge cases defined."
	noTestingFocus   = "Focus on standard unit tests for component logic."
	defaultPropName  = "propName"
	defaultPropType  = "string"
	defaultNoValue   = "none"
	requiredDefault  = "N/A"
	defaultStateName = "stateName"
	defaultInitial   = "initialValue"
	defaultHook      = "useState"
	defaultEmitter   = "onEvent"
	defaultRenders   = "something"
	defaultCondition = "a condition is met"
)

// or returns s, or fallback when s is empty.
func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
