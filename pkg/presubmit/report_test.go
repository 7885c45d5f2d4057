package presubmit

import (
	"bytes"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJUnit(t *testing.T) {
	results := []Result{
		{Check: NameWhitespace, File: "a.go", Line: 2, Message: "line ends with whitespace", Severity: Error},
		{Check: NameWhitespace, File: "a.go", Line: 7, Message: "line ends with whitespace", Severity: Error},
		{Check: NameLicense, File: "b.go", Message: "missing or malformed license header", Severity: Error},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJUnit(&buf, Checks(false, false), []string{"a.go", "b.go"}, results))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))

	root := doc.SelectElement("testsuites")
	require.NotNil(t, root)
	assert.Equal(t, "4", root.SelectAttrValue("tests", ""))
	assert.Equal(t, "2", root.SelectAttrValue("failures", ""))

	suites := root.SelectElements("testsuite")
	require.Len(t, suites, 2)
	assert.Equal(t, NameWhitespace, suites[0].SelectAttrValue("name", ""))
	assert.Equal(t, "1", suites[0].SelectAttrValue("failures", ""))

	cases := suites[0].SelectElements("testcase")
	require.Len(t, cases, 2)
	assert.Equal(t, "a.go", cases[0].SelectAttrValue("name", ""))
	assert.Equal(t, "presubmit.stray-whitespace", cases[0].SelectAttrValue("classname", ""))

	failure := cases[0].SelectElement("failure")
	require.NotNil(t, failure)
	assert.Equal(t, "error", failure.SelectAttrValue("type", ""))
	assert.Equal(t,
		"error: a.go:2: line ends with whitespace [stray-whitespace]\n"+
			"error: a.go:7: line ends with whitespace [stray-whitespace]",
		failure.Text())
	assert.Nil(t, cases[1].SelectElement("failure"))

	license := suites[1].SelectElements("testcase")
	require.Len(t, license, 2)
	assert.Nil(t, license[0].SelectElement("failure"))
	require.NotNil(t, license[1].SelectElement("failure"))
	assert.Equal(t, "missing or malformed license header",
		license[1].SelectElement("failure").SelectAttrValue("message", ""))
}

func TestWriteJUnit_Description(t *testing.T) {
	results := []Result{
		{Check: NameDescription, Message: "change has no description", Severity: Error},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteJUnit(&buf, Checks(true, true), []string{"a.go"}, results))

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(buf.Bytes()))
	suites := doc.SelectElement("testsuites").SelectElements("testsuite")
	require.Len(t, suites, 4)

	desc := suites[3]
	assert.Equal(t, NameDescription, desc.SelectAttrValue("name", ""))
	assert.Equal(t, "1", desc.SelectAttrValue("tests", ""))
	assert.Equal(t, "1", desc.SelectAttrValue("failures", ""))
	cases := desc.SelectElements("testcase")
	require.Len(t, cases, 1)
	assert.Equal(t, "description", cases[0].SelectAttrValue("name", ""))
	require.NotNil(t, cases[0].SelectElement("failure"))
}

func TestWriteJUnit_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJUnit(&buf, Checks(true, false), nil, nil))
	assert.Contains(t, buf.String(), `<?xml version="1.0" encoding="UTF-8"?>`)
	assert.Contains(t, buf.String(), `name="do-not-submit"`)
}
