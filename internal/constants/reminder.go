package constants

const ReminderTitle = "Task Reminder"

// MaxReminderInterval is the longest reminder interval accepted, one year in
// minutes.
const MaxReminderInterval = 525600
