// Package ptrx provides pointer helpers for optional values.
package ptrx

// String returns a pointer to the string value passed in.
func String(v string) *string {
	return &v
}

// StringOrNil returns a pointer to v, or nil when v is empty.
func StringOrNil(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}

// StringValue returns the value of the string pointer passed in or
// "" if the pointer is nil.
func StringValue(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

// Bool returns a pointer to the bool value passed in.
func Bool(v bool) *bool {
	return &v
}

// Int returns a pointer to the int value passed in.
func Int(v int) *int {
	return &v
}
