package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/streetbites/guide/internal/backendtest"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("GUIDE_SEED_ON_START", "false")
	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func ramenBackend(t *testing.T) *backendtest.Server {
	be := backendtest.New(t)
	be.SetChat("Try Noodle Bar", backendtest.RestaurantRecord{
		ID: 1, Name: "Noodle Bar", Address: "1 High St", City: "London",
		Cuisine: []string{"ramen"}, PriceLevel: 1, RatingAvg: 4.5, RatingCount: 8,
	})
	be.SetReviews("1", backendtest.ReviewRecord{ID: 3, UserName: "kim", Rating: 5, Comment: "rich broth"})
	return be
}

func TestCLI_AskText(t *testing.T) {
	be := ramenBackend(t)
	out, err := execute(t, "", "--backend-url", be.URL, "ask", "cheap", "ramen", "in", "London")
	require.NoError(t, err)

	assert.Contains(t, out, "Try Noodle Bar")
	assert.Contains(t, out, "1. Noodle Bar  ★ 4.5 (8)")
	assert.Contains(t, out, "1 High St • London")
	assert.Equal(t, []string{"cheap ramen in London"}, be.Queries())
}

func TestCLI_AskJSONAndYAML(t *testing.T) {
	be := ramenBackend(t)

	out, err := execute(t, "", "--backend-url", be.URL, "ask", "-o", "json", "ramen")
	require.NoError(t, err)
	var got askOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Try Noodle Bar", got.Answer)
	require.Len(t, got.Results, 1)
	assert.Equal(t, []string{"ramen", "$"}, got.Results[0].Badges)

	out, err = execute(t, "", "--backend-url", be.URL, "ask", "--output", "yaml", "ramen")
	require.NoError(t, err)
	var gotYAML askOutput
	require.NoError(t, yaml.Unmarshal([]byte(out), &gotYAML))
	assert.Equal(t, got, gotYAML)

	_, err = execute(t, "", "--backend-url", be.URL, "ask", "--output", "xml", "ramen")
	assert.Error(t, err)
}

func TestCLI_AskFailure(t *testing.T) {
	be := backendtest.New(t)
	be.SetChatRaw(500, `{"detail":"down"}`)
	_, err := execute(t, "", "--backend-url", be.URL, "ask", "tacos")
	assert.Error(t, err)
}

func TestCLI_Reviews(t *testing.T) {
	be := ramenBackend(t)
	be.SetReviews("2")

	out, err := execute(t, "", "--backend-url", be.URL, "reviews", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "- kim ★★★★★")
	assert.Contains(t, out, "rich broth")

	out, err = execute(t, "", "--backend-url", be.URL, "reviews", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "No reviews yet. Be the first!")

	out, err = execute(t, "", "--backend-url", be.URL, "reviews", "1", "-o", "json")
	require.NoError(t, err)
	var rows []reviewRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Equal(t, []reviewRow{{ID: "3", UserName: "kim", Rating: 5, Comment: "rich broth"}}, rows)

	_, err = execute(t, "", "--backend-url", be.URL, "reviews", "404")
	assert.Error(t, err)
}

func TestCLI_Review(t *testing.T) {
	be := ramenBackend(t)

	out, err := execute(t, "", "--backend-url", be.URL, "review", "1", "--name", "sam", "--rating", "4", "--comment", "good")
	require.NoError(t, err)
	assert.Contains(t, out, "- sam ★★★★")
	created := be.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "sam", created[0].UserName)

	be.SetReviewStatus("fail")
	_, err = execute(t, "", "--backend-url", be.URL, "review", "1", "--name", "lee")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"fail"`)
	assert.Equal(t, 1, be.Calls(backendtest.Restaurant), "no refresh after a rejected review")
}

func TestCLI_Seed(t *testing.T) {
	be := backendtest.New(t)
	out, err := execute(t, "", "--backend-url", be.URL, "seed")
	require.NoError(t, err)
	assert.Equal(t, "seeded\n", out)

	be.SetSeedStatus(503)
	_, err = execute(t, "", "--backend-url", be.URL, "seed")
	assert.Error(t, err)
}

func TestCLI_ChatLineMode(t *testing.T) {
	be := ramenBackend(t)
	script := strings.Join([]string{
		"cheap ramen",
		"",
		"/open 1",
		"/name sam",
		"/rating 4",
		"/comment lovely",
		"/submit",
		"/quit",
		"never read",
	}, "\n")

	out, err := execute(t, script, "--backend-url", be.URL, "chat", "--plain")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Hey! I'm your street-food savvy guide."))
	assert.Contains(t, out, "1. Noodle Bar")
	assert.Contains(t, out, "- kim ★★★★★")
	assert.Contains(t, out, "- sam ★★★★")
	assert.Equal(t, []string{"cheap ramen"}, be.Queries())
	created := be.Created()
	require.Len(t, created, 1)
	assert.Equal(t, "lovely", created[0].Comment)
}

func TestCLI_ChatLineModeErrors(t *testing.T) {
	be := backendtest.New(t)
	be.SetChatRaw(500, `oops`)
	script := "tacos\n/open 3\n/submit\n/rating many\n"

	out, err := execute(t, script, "--backend-url", be.URL, "chat", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, `! query "tacos"`)
	assert.Contains(t, out, "! pick a result between 1 and 0")
	assert.Contains(t, out, "! open a restaurant first")
	assert.Contains(t, out, "! rating:")
}

func TestCLI_InvalidBackendURL(t *testing.T) {
	_, err := execute(t, "", "--backend-url", "not a url", "seed")
	assert.Error(t, err)
}
