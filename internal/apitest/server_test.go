package apitest

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolcompare/pkg/tools"
)

func TestServerEnvelope(t *testing.T) {
	s := New(t, WithComparison(tools.Tool{ID: "a"}))

	resp, err := http.Get(s.URL() + "/comparison")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Data  []tools.Tool `json:"data"`
		Error *Error       `json:"error"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, body.Error)
	require.Len(t, body.Data, 1)
	assert.Equal(t, 1, s.Calls("list"))
}

func TestServerFailureInjection(t *testing.T) {
	s := New(t)
	s.Fail(http.StatusBadGateway)

	resp, err := http.Post(s.URL()+"/comparison", "application/json", strings.NewReader(`{"tool_id":"a"}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	var body Response
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	require.NotNil(t, body.Error)
	assert.Equal(t, "BAD_GATEWAY", body.Error.Code)
	assert.Empty(t, s.Comparison())

	s.Recover()
	resp2, err := http.Post(s.URL()+"/comparison", "application/json", strings.NewReader(`{"tool_id":"a"}`))
	require.NoError(t, err)
	resp2.Body.Close()
	assert.Equal(t, http.StatusCreated, resp2.StatusCode)
	assert.Equal(t, []string{"a"}, s.Comparison())
	assert.Equal(t, 2, s.Calls("add"))
}

func TestServerRejectsBadAdd(t *testing.T) {
	s := New(t)
	resp, err := http.Post(s.URL()+"/comparison", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExtractPathParam(t *testing.T) {
	assert.Equal(t, "abc", extractPathParam("/tools/abc", "/tools/"))
	assert.Equal(t, "abc", extractPathParam("/tools/abc/", "/tools/"))
	assert.Equal(t, "", extractPathParam("/tools/a/b", "/tools/"))
	assert.Equal(t, "", extractPathParam("/tools/", "/tools/"))
}
