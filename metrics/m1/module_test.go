package m1

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/uimetricsgo/internal/metric"
	"github.com/vk/uimetricsgo/internal/registry"
)

func TestExecute(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    int64
	}{
		{"unpadded payload", strings.Repeat("A", 1000), 750},
		{"padded payload", "QQ==", 1},
		{"short payload", "QUJD", 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			image := &metric.GuiImage{Data: []byte(tc.payload), GuiType: metric.GuiTypeDesktop}

			measures, err := Metric{}.Execute(context.Background(), image, nil)
			require.NoError(t, err)
			require.Len(t, measures, 1)
			assert.True(t, cty.NumberIntVal(tc.want).RawEquals(measures[0]))
		})
	}
}

func TestRegister(t *testing.T) {
	table := registry.NewTable()
	(&Module{}).Register(table)
	assert.Equal(t, []string{"m1"}, table.Ids())
}
