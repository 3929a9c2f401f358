package github

// GraphQL payload types for the two queries the app issues. Optional fields
// are pointers: GitHub omits reviewDecision and mergeable when no branch
// protection rule requires them, and absence is not a negative signal.

// MergeableState is GitHub's computed merge-conflict status.
type MergeableState string

const (
	MergeableMergeable   MergeableState = "MERGEABLE"
	MergeableConflicting MergeableState = "CONFLICTING"
	MergeableUnknown     MergeableState = "UNKNOWN"
)

// ReviewDecision is GitHub's computed reviewer-approval verdict.
type ReviewDecision string

const (
	ReviewApproved         ReviewDecision = "APPROVED"
	ReviewChangesRequested ReviewDecision = "CHANGES_REQUESTED"
	ReviewRequired         ReviewDecision = "REVIEW_REQUIRED"
)

// CheckState is the aggregated status-check rollup state on a commit.
type CheckState string

const (
	CheckSuccess  CheckState = "SUCCESS"
	CheckFailure  CheckState = "FAILURE"
	CheckError    CheckState = "ERROR"
	CheckPending  CheckState = "PENDING"
	CheckExpected CheckState = "EXPECTED"
)

// PullRequest is the raw PR record as returned by the GraphQL API.
type PullRequest struct {
	ID             string            `json:"id"`
	Number         int               `json:"number"`
	Title          string            `json:"title"`
	URL            string            `json:"url"`
	CreatedAt      string            `json:"createdAt"`
	IsDraft        bool              `json:"isDraft"`
	Repository     Repository        `json:"repository"`
	Commits        *CommitConnection `json:"commits"`
	ReviewDecision *ReviewDecision   `json:"reviewDecision"`
	Mergeable      *MergeableState   `json:"mergeable"`
}

// Repository carries the owner/name pair of the PR's repository.
type Repository struct {
	NameWithOwner string `json:"nameWithOwner"`
}

// CommitConnection wraps the last commit of the PR.
type CommitConnection struct {
	Nodes []CommitNode `json:"nodes"`
}

// CommitNode wraps a single commit.
type CommitNode struct {
	Commit Commit `json:"commit"`
}

// Commit carries the status-check rollup, if any checks are configured.
type Commit struct {
	StatusCheckRollup *StatusCheckRollup `json:"statusCheckRollup"`
}

// StatusCheckRollup is the aggregated CI state across all checks.
type StatusCheckRollup struct {
	State CheckState `json:"state"`
}

// Rollup returns the check rollup of the latest commit, or nil when no
// checks are configured.
func (pr *PullRequest) Rollup() *StatusCheckRollup {
	if pr.Commits == nil || len(pr.Commits.Nodes) == 0 {
		return nil
	}
	return pr.Commits.Nodes[0].Commit.StatusCheckRollup
}

type graphQLRequest struct {
	Query     string            `json:"query"`
	Variables map[string]string `json:"variables,omitempty"`
}

type graphQLResponse[T any] struct {
	Data   *T             `json:"data"`
	Errors []GraphQLError `json:"errors"`
}

// GraphQLError is a single error entry from a GraphQL response body.
type GraphQLError struct {
	Message string `json:"message"`
}

type authoredPRsData struct {
	Search struct {
		Nodes []PullRequest `json:"nodes"`
	} `json:"search"`
}

type singlePRData struct {
	Repository *struct {
		PullRequest *PullRequest `json:"pullRequest"`
	} `json:"repository"`
}
