package createrecipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/quicken/pkg/errors"
	"github.com/arthur-debert/quicken/pkg/filesystem"
	"github.com/arthur-debert/quicken/pkg/recipe"
	"github.com/arthur-debert/quicken/pkg/types"
)

func fullVars() map[string]string {
	return map[string]string{
		VarProjectName: "demo",
		VarAuthorName:  "Jane Doe",
		VarAuthorEmail: "jane@example.com",
		VarDescription: "A demo project",
		VarLicense:     "isc",
	}
}

func TestRender(t *testing.T) {
	out, err := Render(fullVars())
	require.NoError(t, err)

	want := `---
- echo: Generating project demo

- readme:
    project_name: demo
    author_name: Jane Doe
    author_email: jane@example.com
    description: A demo project
- license: isc
`
	assert.Equal(t, want, out)
}

func TestRenderOmitsOptionalLines(t *testing.T) {
	out, err := Render(map[string]string{VarProjectName: "demo", VarAuthorName: "Jane"})
	require.NoError(t, err)

	assert.NotContains(t, out, "author_email")
	assert.NotContains(t, out, "description")
	assert.Contains(t, out, "- license: mit\n")
}

func TestRenderedRecipeReadsBack(t *testing.T) {
	vars := map[string]string{
		VarProjectName: "weird: name # not a comment",
		VarAuthorName:  "2024",
		VarAuthorEmail: "'quoted'@example.com",
		VarDescription: "line one\nline two",
		VarLicense:     "mit",
	}
	out, err := Render(vars)
	require.NoError(t, err)

	steps, err := recipe.ParseSteps([]byte(out))
	require.NoError(t, err)
	require.Len(t, steps, 3)

	assert.Equal(t, "echo", steps[0].Name)
	assert.Equal(t, types.String("Generating project weird: name # not a comment"), steps[0].Args)

	readme := steps[1].Args
	for _, key := range []string{VarProjectName, VarAuthorName, VarAuthorEmail, VarDescription} {
		got, ok := readme.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, types.String(vars[key]), got, key)
	}

	assert.Equal(t, types.String("mit"), steps[2].Args)
}

func TestCreateRecipe(t *testing.T) {
	fs := filesystem.NewMemory()

	result := CreateRecipe(CreateRecipeOptions{Path: "/p/recipe.yml", Variables: fullVars(), FS: fs})
	require.True(t, result.Success(), result.Summary())

	content, err := fs.ReadFile("/p/recipe.yml")
	require.NoError(t, err)
	assert.Contains(t, string(content), "- echo: Generating project demo")
}

func TestCreateRecipeEmpty(t *testing.T) {
	fs := filesystem.NewMemory()

	result := CreateRecipe(CreateRecipeOptions{Path: "/p/recipe.yml", Variables: fullVars(), Empty: true, FS: fs})
	require.True(t, result.Success(), result.Summary())

	content, err := fs.ReadFile("/p/recipe.yml")
	require.NoError(t, err)
	assert.Empty(t, content)
}

func TestCreateRecipeConflict(t *testing.T) {
	fs := filesystem.NewMemory()
	require.NoError(t, fs.WriteFile("/p/recipe.yml", []byte("- echo: keep"), 0644))

	result := CreateRecipe(CreateRecipeOptions{Path: "/p/recipe.yml", Variables: fullVars(), FS: fs})
	assert.False(t, result.Success())
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.ErrFileWriteConflict, result.Errors[0].Kind)
	assert.Equal(t, "could not create file /p/recipe.yml", result.Errors[0].Message)

	content, err := fs.ReadFile("/p/recipe.yml")
	require.NoError(t, err)
	assert.Equal(t, "- echo: keep", string(content))
}

func TestCreateRecipeNeedsPath(t *testing.T) {
	result := CreateRecipe(CreateRecipeOptions{FS: filesystem.NewMemory()})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, errors.ErrInvalidArguments, result.Errors[0].Kind)
}
