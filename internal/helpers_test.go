package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	moment := time.Date(2024, time.March, 5, 9, 7, 0, 0, time.UTC)

	assert.Equal(t, "05.03.2024", Format(moment))
	assert.Equal(t, "05.03.2024 09:07", FormatDateTime(moment))
	assert.Equal(t, "05.03.2024", FormatOptional(&moment))
	assert.Equal(t, "-", FormatOptional(nil))
}
