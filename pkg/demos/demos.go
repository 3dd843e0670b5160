// Package demos ships the four reference apps: a greeting and a mood
// calculator, each built once with the fixed Interface layout and once with
// the free Blocks layout. The backend functions are pure.
package demos

import (
	"fmt"
	"sort"

	"github.com/goliatone/go-formbind/pkg/app"
	"github.com/goliatone/go-formbind/pkg/model"
)

// Moods lists the choices offered by the mood dropdown.
var Moods = []string{"glücklich", "traurig", "aufgeregt"}

// Greet greets the user by name.
func Greet(name string) string {
	return fmt.Sprintf("Hallo, %s!! 🙂", name)
}

// Compute combines the inputs into a message and scores the intensity.
func Compute(name, mood string, intensity int) (string, int) {
	message := fmt.Sprintf("%s fühlt sich %s", name, mood)
	score := intensity * 10
	return message, score
}

// Hello is the simplest app: one textbox in, one textbox out.
func Hello() (*app.App, error) {
	return app.NewInterface(
		Greet,
		[]*model.Field{model.Textbox("Name eingeben")},
		[]*model.Field{model.Textbox("Begrüßung")},
		app.WithTitle("Hello World mit Gradio"),
		app.WithDescription("Geben Sie Ihren Namen ein, um eine Begrüßung zu erhalten."),
	)
}

// HelloBlocks lays out the greeting manually with an explicit button.
func HelloBlocks() (*app.App, error) {
	return app.NewBlocks("Hello World mit Gradio", func(b *app.Builder) {
		b.Markdown("Geben Sie Ihren Namen ein, um eine Begrüßung zu erhalten.")

		name := model.Textbox("Name eingeben")
		b.Add(name)

		greetButton := b.Button("Begrüßen")

		greeting := model.Textbox("Begrüßung", model.WithInteractive(false))
		b.Add(greeting)

		b.Click(greetButton, Greet, []*model.Field{name}, []*model.Field{greeting})
	})
}

func moodInputs(defaultIntensity bool) []*model.Field {
	sliderOptions := []model.FieldOption{model.WithStep(1)}
	if defaultIntensity {
		sliderOptions = append(sliderOptions, model.WithValue(5))
	}
	return []*model.Field{
		model.Textbox("Name eingeben"),
		model.Dropdown("Stimmung auswählen", Moods),
		model.Slider("Intensität der Stimmung", 1, 10, sliderOptions...),
	}
}

// Components combines several input and output kinds in the fixed layout.
func Components() (*app.App, error) {
	return app.NewInterface(
		Compute,
		moodInputs(false),
		[]*model.Field{
			model.Textbox("Nachricht"),
			model.Number("Stimmungswert"),
		},
		app.WithTitle("Gradio Komponenten Beispiel"),
		app.WithDescription("Geben Sie Ihren Namen, Ihre Stimmung und die Intensität ein."),
	)
}

// ComponentsBlocks arranges the mood calculator in rows with a compute
// button and read-only outputs.
func ComponentsBlocks() (*app.App, error) {
	return app.NewBlocks("Gradio Komponenten Beispiel", func(b *app.Builder) {
		b.Markdown("Geben Sie Ihren **Namen**, Ihre **Stimmung** und die **Intensität** ein.")

		inputs := moodInputs(true)
		b.Row(func(row *app.Builder) {
			row.Add(inputs...)
		})

		compute := b.Button("Berechnen")

		message := model.Textbox("Nachricht", model.WithInteractive(false))
		score := model.Number("Stimmungswert", model.WithInteractive(false))
		b.Row(func(row *app.Builder) {
			row.Add(message, score)
		})

		b.Click(compute, Compute, inputs, []*model.Field{message, score})
	})
}

// Factory builds a demo app.
type Factory func() (*app.App, error)

var registry = map[string]Factory{
	"hello":             Hello,
	"hello-blocks":      HelloBlocks,
	"components":        Components,
	"components-blocks": ComponentsBlocks,
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, bool) {
	factory, ok := registry[name]
	return factory, ok
}

// Names lists the registered demos, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
