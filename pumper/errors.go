package pumper

import "fmt"

func paramErr(format string, args ...interface{}) error {
	return fmt.Errorf("pumper params; "+format, args...)
}

func paramErrCaused(cause error, format string, args ...interface{}) error {
	return fmt.Errorf(
		"pumper params; "+fmt.Sprintf(format, args...)+"; %w", cause)
}
