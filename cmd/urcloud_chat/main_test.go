package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"urcloud_chat/pkg/ai"
	"urcloud_chat/pkg/config"
	"urcloud_chat/pkg/ui"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopClient struct{}

func (nopClient) SendMessage(ctx context.Context, history []ai.Message, text string, attachments []ai.Attachment) (ai.Reply, error) {
	return ai.Reply{}, nil
}

// setup isolates HOME, env and the package seams for one test.
func setup(t *testing.T, terminal bool) (configPath string, gotCfg *config.Config, gotModel *tea.Model) {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(config.EnvGeminiAPIKey, "")
	t.Setenv(config.EnvAPIKey, "")
	t.Setenv(config.EnvModel, "")

	origTerminal, origClient, origRun := isTerminal, newClient, runProgram
	t.Cleanup(func() {
		isTerminal, newClient, runProgram = origTerminal, origClient, origRun
	})

	gotCfg = &config.Config{}
	gotModel = new(tea.Model)
	isTerminal = func() bool { return terminal }
	newClient = func(cfg config.Config) (ai.Client, string, error) {
		*gotCfg = cfg
		return nopClient{}, cfg.Model, nil
	}
	runProgram = func(ctx context.Context, m tea.Model) error {
		*gotModel = m
		return nil
	}

	return filepath.Join(home, ".urcloud_chat", "config.json"), gotCfg, gotModel
}

func execute(args ...string) (string, error) {
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestVersionFlag(t *testing.T) {
	out, err := execute("--version")
	require.NoError(t, err)
	assert.Contains(t, out, "urcloud_chat")
	assert.Contains(t, out, "platform:")
}

func TestRun_MissingAPIKey(t *testing.T) {
	configPath, _, gotModel := setup(t, true)

	out, err := execute("--config", configPath)
	require.Error(t, err)
	assert.Contains(t, out, "API key is required")
	assert.Nil(t, *gotModel)

	_, statErr := os.Stat(configPath)
	assert.NoError(t, statErr, "default config should be created")
}

func TestRun_RequiresTerminal(t *testing.T) {
	configPath, _, gotModel := setup(t, false)
	t.Setenv(config.EnvGeminiAPIKey, "test-key")

	_, err := execute("--config", configPath)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "interactive terminal"))
	assert.Nil(t, *gotModel)
}

func TestRun_StartsProgram(t *testing.T) {
	configPath, gotCfg, gotModel := setup(t, true)
	t.Setenv(config.EnvGeminiAPIKey, "test-key")

	_, err := execute("--config", configPath, "--model", "gemini-2.5-flash")
	require.NoError(t, err)

	assert.Equal(t, "test-key", gotCfg.APIKey)
	assert.Equal(t, "gemini-2.5-flash", gotCfg.Model)
	require.NotNil(t, *gotModel)
	_, ok := (*gotModel).(ui.Model)
	assert.True(t, ok, "expected ui.Model, got %T", *gotModel)
}

func TestRun_AttachFlag(t *testing.T) {
	configPath, _, gotModel := setup(t, true)
	t.Setenv(config.EnvGeminiAPIKey, "test-key")

	missing := filepath.Join(t.TempDir(), "missing.pdf")
	_, err := execute("--config", configPath, "--attach", missing)
	require.Error(t, err)
	assert.Nil(t, *gotModel)

	pdf := filepath.Join(t.TempDir(), "doc.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n"), 0600))
	_, err = execute("--config", configPath, "--attach", pdf)
	require.NoError(t, err)
	assert.NotNil(t, *gotModel)
}

func TestRun_ProgramError(t *testing.T) {
	configPath, _, _ := setup(t, true)
	t.Setenv(config.EnvGeminiAPIKey, "test-key")
	runProgram = func(ctx context.Context, m tea.Model) error {
		return errors.New("tty lost")
	}

	_, err := execute("--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tty lost")
}

func TestRejectsPositionalArgs(t *testing.T) {
	_, err := execute("extra")
	assert.Error(t, err)
}
