package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVRenderQuotesOnlyWhenNeeded(t *testing.T) {
	data := Dataset{
		Headers: []string{"Pregunta", "Puntaje Promedio"},
		Rows: []map[string]string{
			{"Pregunta": "¿Explica con claridad, siempre?", "Puntaje Promedio": "2.67"},
			{"Pregunta": "¿Llega puntual?", "Puntaje Promedio": "3"},
		},
	}

	out, err := NewCSVExporter().Render(data)
	require.NoError(t, err)

	rendered := string(out)
	assert.Contains(t, rendered, "Pregunta,Puntaje Promedio\n")
	assert.Contains(t, rendered, `"¿Explica con claridad, siempre?",2.67`)
	assert.Contains(t, rendered, "¿Llega puntual?,3\n")
}

func TestCSVRenderRequiresHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestPDFRenderProducesDocument(t *testing.T) {
	data := Dataset{
		Headers: []string{"Profesor", "Calificación Promedio", "Total de Encuestas", "Nivel"},
		Rows: []map[string]string{
			{"Profesor": "Laura Méndez", "Calificación Promedio": "2.67", "Total de Encuestas": "1", "Nivel": "PRIMARY"},
		},
	}

	out, err := NewPDFExporter().Render(data, "Calificaciones Generales")
	require.NoError(t, err)
	assert.True(t, len(out) > 0)
	assert.Equal(t, "%PDF", string(out[:4]))
}
