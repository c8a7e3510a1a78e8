/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/xschema/metrics"
)

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m, err := metrics.New(reg, "ctx-1")
	require.NoError(t, err)

	m.RecordFill("types", false)
	m.RecordFill("types", true)
	m.RecordFill("types", true)
	m.RecordScans("types", 3)
	m.RecordNotification()
	m.SetDescriptors(7)

	count, err := testutil.GatherAndCount(reg,
		"xschema_index_cache_fills_total",
		"xschema_index_assembly_scans_total",
		"xschema_index_load_notifications_total",
		"xschema_types_descriptors",
	)
	require.NoError(t, err)
	assert.Equal(t, 5, count, "two fill series, one scan series, one notification, one gauge")
}

func TestMetrics_TwoContextsShareRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := metrics.New(reg, "a")
	require.NoError(t, err)
	_, err = metrics.New(reg, "b")
	require.NoError(t, err)

	_, err = metrics.New(reg, "a")
	assert.Error(t, err, "same context id registers duplicate collectors")

	a.Unregister()
	_, err = metrics.New(reg, "a")
	assert.NoError(t, err, "unregistered collectors can be registered again")
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *metrics.Metrics
	assert.NotPanics(t, func() {
		m.RecordFill("namespaces", false)
		m.RecordScans("namespaces", 1)
		m.RecordNotification()
		m.SetDescriptors(1)
		m.Unregister()
	})
}
