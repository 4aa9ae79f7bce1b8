package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

func safeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

func safeStrings(sgs []string) []string {
	safe := []string{}
	for _, s := range sgs {
		safe = append(safe, safeString(s))
	}
	return safe
}

// enumerate runs the count-then-fill pattern of Vulkan list queries
func enumerate[T any](query func(count *uint32, out []T) vk.Result) ([]T, error) {
	var count uint32
	if err := vk.Error(query(&count, nil)); err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}

	out := make([]T, count)
	if err := vk.Error(query(&count, out)); err != nil {
		return nil, err
	}
	return out[:count], nil
}
