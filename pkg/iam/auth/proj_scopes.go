package auth

// ============================================================================
// DOMAIN-SPECIFIC SCOPES - Inclusive employment platform
// ============================================================================

const (
	ScopeAll = "*"

	// Job scopes
	ScopeJobsAll    = "jobs:*"
	ScopeJobsRead   = "jobs:read"
	ScopeJobsWrite  = "jobs:write"
	ScopeJobsReview = "jobs:review" // Approve/reject/request changes

	// Hiring report scopes
	ScopeReportsAll   = "reports:*"
	ScopeReportsRead  = "reports:read"
	ScopeReportsWrite = "reports:write"
	ScopeReportsSend  = "reports:send"
	ScopeReportsAdmin = "reports:admin" // Batch retries, previews

	// Quota scopes
	ScopeQuotaRead  = "quota:read"
	ScopeQuotaWrite = "quota:write"

	// Complaint scopes
	ScopeComplaintsRead   = "complaints:read"
	ScopeComplaintsWrite  = "complaints:write"
	ScopeComplaintsTriage = "complaints:triage"

	// Messaging scopes
	ScopeMessagesRead  = "messages:read"
	ScopeMessagesWrite = "messages:write"

	// Interview scopes
	ScopeInterviewsRead  = "interviews:read"
	ScopeInterviewsWrite = "interviews:write"

	// Training scopes
	ScopeTrainingRead   = "training:read"
	ScopeTrainingEnroll = "training:enroll"
	ScopeTrainingManage = "training:manage"

	// Dashboard scopes
	ScopeDashboardsView   = "dashboards:view"
	ScopeDashboardsExport = "dashboards:export"
)

// RoleScopes maps each platform role to the scopes it holds. The three roles
// are fixed; finer-grained grants would come from API keys, not accounts.
var RoleScopes = map[Role][]string{
	RoleCandidate: {
		ScopeJobsRead,
		ScopeComplaintsWrite,
		ScopeComplaintsRead,
		ScopeMessagesRead,
		ScopeMessagesWrite,
		ScopeInterviewsRead,
		ScopeInterviewsWrite,
		ScopeTrainingRead,
		ScopeTrainingEnroll,
	},
	RoleCompany: {
		ScopeJobsRead,
		ScopeJobsWrite,
		ScopeReportsRead,
		ScopeReportsWrite,
		ScopeReportsSend,
		ScopeQuotaRead,
		ScopeQuotaWrite,
		ScopeMessagesRead,
		ScopeMessagesWrite,
		ScopeInterviewsRead,
		ScopeInterviewsWrite,
	},
	RoleAdmin: {
		ScopeAll,
	},
}

// HasScope reports whether the granted scope set satisfies the required
// scope, honoring "*" and "<resource>:*" wildcards.
func HasScope(granted []string, required string) bool {
	for _, g := range granted {
		if g == ScopeAll || g == required {
			return true
		}
		if n := len(g); n > 2 && g[n-2] == ':' && g[n-1] == '*' {
			if len(required) >= n-1 && required[:n-1] == g[:n-1] {
				return true
			}
		}
	}
	return false
}
