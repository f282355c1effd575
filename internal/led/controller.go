package led

// NotificationLED is the LED type name of the lm8502 notification light.
const NotificationLED = "notification"

// Controller abstracts the board's notification LED.
type Controller interface {
	// Set controls an LED by name
	// Parameters:
	//   ledType: LED identifier, "notification" on this board
	//   enabled: whether the LED should pulse or be off
	//   pattern: pulse pattern name (e.g., "quick", "long", "double");
	//            empty string means the default pattern
	Set(ledType string, enabled bool, pattern string) error

	// Apply runs the program for a numeric notification state (0 = off).
	Apply(state int) error

	// Initialize resets the hardware to an idle state. Errors are logged.
	Initialize()

	// Available returns the list of LED types supported by this controller
	Available() []string

	// Patterns returns the list of patterns supported by this controller
	Patterns() []string
}
