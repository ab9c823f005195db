package workflow

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.eggybyte.com/jerseykit/internal/core/errors"
	"go.eggybyte.com/jerseykit/internal/generators"
	"go.eggybyte.com/jerseykit/internal/ui"
)

type recorder struct {
	steps      []string
	guardErr   error
	provErr    error
	genErr     error
	deployErr  error
	answers    []string
	specSeen   generators.ProjectSpec
	deployName string
}

func (r *recorder) Ensure() error {
	r.steps = append(r.steps, "guard")
	return r.guardErr
}

func (r *recorder) Provision(context.Context) error {
	r.steps = append(r.steps, "provision")
	return r.provErr
}

func (r *recorder) Generate(_ context.Context, spec generators.ProjectSpec) error {
	r.steps = append(r.steps, "generate")
	r.specSeen = spec
	return r.genErr
}

func (r *recorder) Deploy(_ context.Context, name string) error {
	r.steps = append(r.steps, "deploy")
	r.deployName = name
	return r.deployErr
}

func (r *recorder) Ask(label string) (string, error) {
	r.steps = append(r.steps, "ask:"+label)
	if len(r.answers) == 0 {
		return "", ui.ErrNoInput
	}
	a := r.answers[0]
	r.answers = r.answers[1:]
	return a, nil
}

func newWorkflow(r *recorder) *Workflow {
	return New(Deps{Guard: r, Provisioner: r, Generator: r, Deployer: r, Asker: r})
}

func TestRunFullSequence(t *testing.T) {
	r := &recorder{answers: []string{"demo", "com.example"}}

	require.NoError(t, newWorkflow(r).Run(context.Background(), RunOptions{}))

	assert.Equal(t, []string{
		"guard", "provision",
		"ask:" + ProjectNamePrompt, "ask:" + BasePackagePrompt,
		"generate", "deploy",
	}, r.steps)
	assert.Equal(t, generators.ProjectSpec{ProjectName: "demo", BasePackage: "com.example"}, r.specSeen)
	assert.Equal(t, "demo", r.deployName)
}

func TestRunSkipInstall(t *testing.T) {
	r := &recorder{}

	err := newWorkflow(r).Run(context.Background(), RunOptions{
		SkipInstall: true, ProjectName: "demo", BasePackage: "com.example",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"guard", "generate", "deploy"}, r.steps)
}

func TestRunPromptsOnlyForMissingValues(t *testing.T) {
	r := &recorder{answers: []string{"org.acme"}}

	require.NoError(t, newWorkflow(r).Run(context.Background(), RunOptions{SkipInstall: true, ProjectName: "shop"}))
	assert.Equal(t, []string{"guard", "ask:" + BasePackagePrompt, "generate", "deploy"}, r.steps)
	assert.Equal(t, "org.acme", r.specSeen.BasePackage)
}

func TestRunStopsAtGuard(t *testing.T) {
	r := &recorder{guardErr: errors.New(errors.CodePermissionDenied, "root privileges required")}

	err := newWorkflow(r).Run(context.Background(), RunOptions{})
	assert.Equal(t, errors.CodePermissionDenied, errors.CodeOf(err))
	assert.Equal(t, []string{"guard"}, r.steps)
}

func TestRunStopsAfterFailedGeneration(t *testing.T) {
	r := &recorder{genErr: errors.New(errors.CodeExternalCommand, "mvn failed")}

	err := newWorkflow(r).Run(context.Background(), RunOptions{ProjectName: "demo", BasePackage: "com.example"})
	assert.Equal(t, errors.CodeExternalCommand, errors.CodeOf(err))
	assert.NotContains(t, r.steps, "deploy")
}

func TestRunWithoutInput(t *testing.T) {
	r := &recorder{}

	err := newWorkflow(r).Run(context.Background(), RunOptions{SkipInstall: true})
	assert.Equal(t, errors.CodeInvalidArgument, errors.CodeOf(err))
	assert.True(t, strings.Contains(err.Error(), "project name"), err.Error())
	assert.NotContains(t, r.steps, "generate")
}

func TestCheck(t *testing.T) {
	r := &recorder{}
	require.NoError(t, newWorkflow(r).Check(context.Background()))
	assert.Equal(t, []string{"guard", "provision"}, r.steps)

	r = &recorder{provErr: errors.New(errors.CodeNotFound, "JDK is not installed")}
	err := newWorkflow(r).Check(context.Background())
	assert.Equal(t, errors.CodeNotFound, errors.CodeOf(err))
}
