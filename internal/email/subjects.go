package email

const (
	subjectClientWelcomeFmt = "Welcome aboard, %s"
	subjectTaskReminderFmt  = "Reminder: %s with %s due %s"
	subjectLeadAlertFmt     = "%s lead: %s (%s)"
)
