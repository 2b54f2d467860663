package log

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/cottand/systemf/frontend/ast"
	"github.com/stretchr/testify/assert"
)

func testLogger(buf *bytes.Buffer) *slog.Logger {
	return New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestFiltersDisabledSections(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := testLogger(buf)

	logger.Debug("hidden", "section", "backend")
	assert.Empty(t, buf.String())

	logger.Debug("no section")
	assert.Empty(t, buf.String())

	logger.Debug("shown", "section", "parser")
	assert.Contains(t, buf.String(), "shown")
}

func TestSectionFromWith(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := testLogger(buf)

	logger.With("section", "infer").Debug("from with")
	assert.Contains(t, buf.String(), "from with")

	buf.Reset()
	logger.With("section", "elsewhere").Info("filtered")
	assert.Empty(t, buf.String())
}

func TestWarningsAlwaysPass(t *testing.T) {
	buf := &bytes.Buffer{}
	testLogger(buf).Warn("careful", "section", "elsewhere")
	assert.Contains(t, buf.String(), "careful")
}

func TestEnableSections(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := testLogger(buf)

	EnableSections("repl")
	logger.Debug("now shown", "section", "repl/history")
	assert.Contains(t, buf.String(), "now shown")
}

func TestRendersTermsAndTypes(t *testing.T) {
	buf := &bytes.Buffer{}
	term := &ast.Abs{ParamName: "x", ParamType: &ast.IntType{}, Body: &ast.Var{Name: "x"}}
	testLogger(buf).Warn("checked", "term", term, "type", &ast.Arrow{Param: &ast.IntType{}, Result: &ast.IntType{}})

	assert.Contains(t, buf.String(), `term="λx: Int. x"`)
	assert.Contains(t, buf.String(), `type="Int -> Int"`)
}
