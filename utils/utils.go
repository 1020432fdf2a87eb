package utils

func Ptr[T any](v T) *T {
	return &v
}

func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
