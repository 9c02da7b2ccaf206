package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Operators() OperatorRepository
	Preferences() PreferencesRepository
}
