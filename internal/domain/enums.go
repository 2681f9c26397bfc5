package domain

// ReportKind selects which collection a report lives in. Both kinds share
// the same lifecycle rules.
type ReportKind string

const (
	ReportKindRedFlag      ReportKind = "red-flag"
	ReportKindIntervention ReportKind = "intervention"
)

func (k ReportKind) String() string { return string(k) }

func (k ReportKind) IsValid() bool {
	switch k {
	case ReportKindRedFlag, ReportKindIntervention:
		return true
	}
	return false
}

// DisplayName returns the human-facing name used in emails and notifications.
func (k ReportKind) DisplayName() string {
	switch k {
	case ReportKindRedFlag:
		return "Red Flag"
	case ReportKindIntervention:
		return "Intervention"
	}
	return string(k)
}

// PathSegment returns the plural URL segment for the kind ("red-flags").
func (k ReportKind) PathSegment() string { return string(k) + "s" }

// ReportKindFromPath resolves a plural URL segment back to a kind.
func ReportKindFromPath(segment string) (ReportKind, bool) {
	for _, k := range []ReportKind{ReportKindRedFlag, ReportKindIntervention} {
		if k.PathSegment() == segment {
			return k, true
		}
	}
	return "", false
}

// ReportStatus is the lifecycle state of a report.
type ReportStatus string

const (
	ReportStatusDraft              ReportStatus = "draft"
	ReportStatusUnderInvestigation ReportStatus = "under-investigation"
	ReportStatusRejected           ReportStatus = "rejected"
	ReportStatusResolved           ReportStatus = "resolved"
)

func (s ReportStatus) String() string { return string(s) }

func (s ReportStatus) IsValid() bool {
	switch s {
	case ReportStatusDraft, ReportStatusUnderInvestigation, ReportStatusRejected, ReportStatusResolved:
		return true
	}
	return false
}

// IsTransitionTarget reports whether an admin may move a report into s.
// Draft is the initial state and is never a target.
func (s ReportStatus) IsTransitionTarget() bool {
	switch s {
	case ReportStatusUnderInvestigation, ReportStatusRejected, ReportStatusResolved:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// NotificationType classifies in-app notifications.
type NotificationType string

const (
	NotificationTypeStatusChange NotificationType = "status_change"
)

func (t NotificationType) String() string { return string(t) }

// DeliveryChannel names the sink a delivery job targets.
type DeliveryChannel string

const (
	DeliveryChannelInApp DeliveryChannel = "in_app"
	DeliveryChannelEmail DeliveryChannel = "email"
)

func (c DeliveryChannel) String() string { return string(c) }

func (c DeliveryChannel) IsValid() bool {
	switch c {
	case DeliveryChannelInApp, DeliveryChannelEmail:
		return true
	}
	return false
}

// DeliveryStatus is the state of a delivery job in the outbox.
type DeliveryStatus string

const (
	DeliveryStatusPending DeliveryStatus = "pending"
	DeliveryStatusSent    DeliveryStatus = "sent"
	DeliveryStatusFailed  DeliveryStatus = "failed"
)

func (s DeliveryStatus) String() string { return string(s) }
