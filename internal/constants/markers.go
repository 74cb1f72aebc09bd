package constants

// Result-text markers. Validation does marker-substring checks against task
// result text, so these literals are a compatibility contract: reproduce
// them bit-exact.
const (
	// ReviewOKMarker must appear in a reviewer result for validation to pass.
	ReviewOKMarker = "[review-ok]"

	// DomainMarkerFormat renders the resolved mission domain into a reviewer
	// result. Validation requires the substituted form verbatim.
	DomainMarkerFormat = "[domain:%s]"

	// ManualApplyMarker tags a coder result as requiring an explicit apply.
	ManualApplyMarker = "[requires-manual-apply]"

	// OrchestrationOnlyMarker tags a planner result.
	OrchestrationOnlyMarker = "(executionMode=orchestration-only)"

	// ValidationPassedSuffix is appended (never replacing) to a reviewer
	// result after a passed validation.
	ValidationPassedSuffix = "\n[validation:passed]"

	// ValidationFailedSuffix is appended to a reviewer result after a failed
	// validation.
	ValidationFailedSuffix = "\n[validation:failed]"

	// MinReviewResultLength is the exclusive lower bound on reviewer result
	// length for the review marker check.
	MinReviewResultLength = 12
)

// Opaque token formats.
const (
	// ApplyTokenPrefix prefixes the capability token minted by a successful
	// apply. Full format: apply_<uuid>.
	ApplyTokenPrefix = "apply_"

	// AuditRefPrefix prefixes grant audit references.
	// Full format: studio_access_<base36-millis>.
	AuditRefPrefix = "studio_access_"
)

// Validation check IDs. The reviewer validation battery runs exactly these
// nine checks; IDs appear in validation reports and must stay stable.
const (
	CheckReviewMarker      = "review_marker"
	CheckDomainMarker      = "domain_marker"
	CheckPlannerDone       = "planner_done"
	CheckCoderDone         = "coder_done"
	CheckRunsByRole        = "runs_by_role"
	CheckQualityChecklist  = "quality_checklist"
	CheckChecklistCoverage = "quality_checklist_domain_coverage"
	CheckMissionDomain     = "mission_domain"
	CheckBudgetCap         = "budget_cap"
)

// ValidationCheckCount is the size of the reviewer validation battery.
const ValidationCheckCount = 9
