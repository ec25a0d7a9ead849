package email

const (
	subjectBookingConfirmationFmt = "Votre rendez-vous chez %s est confirmé"
	subjectAppointmentReminderFmt = "Rappel : rendez-vous chez %s demain"
	subjectSalonWelcome           = "Bienvenue ! Votre salon est prêt"
)
