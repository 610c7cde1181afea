package csvtext_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/logiandes/ms-inventario/pkg/csvtext"
)

func TestParse_EncabezadoYFilas(t *testing.T) {
	data := []byte("DEPARTAMENTO,MUNICIPIO\nCaldas,Manizales\nCaldas,Armenia\n")

	recs, err := csvtext.Parse(data, csvtext.Options{})
	require.NoError(t, err)
	require.Len(t, recs, 2)

	assert.Equal(t, "Caldas", recs[0]["DEPARTAMENTO"])
	assert.Equal(t, "Manizales", recs[0]["MUNICIPIO"])
	assert.Equal(t, "Armenia", recs[1]["MUNICIPIO"])
}

func TestParse_RecortaEspaciosYOmiteLineasVacias(t *testing.T) {
	data := []byte("a,b\n 1 , 2 \n,\n3,4\n")

	recs, err := csvtext.Parse(data, csvtext.Options{})
	require.NoError(t, err)
	require.Len(t, recs, 2, "la línea vacía no debe producir registro")

	assert.Equal(t, "1", recs[0]["a"])
	assert.Equal(t, "2", recs[0]["b"])
	assert.Equal(t, "3", recs[1]["a"])
}

func TestParse_DelimitadorPuntoYComa(t *testing.T) {
	data := []byte("id_almacen;nombre_almacen\nALM001;Bodega Norte\n")

	recs, err := csvtext.Parse(data, csvtext.Options{Delimiter: ';'})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "ALM001", recs[0]["id_almacen"])
	assert.Equal(t, "Bodega Norte", recs[0]["nombre_almacen"])
}

func TestParse_EliminaBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("a;b\n1;2\n")...)

	recs, err := csvtext.Parse(data, csvtext.Options{Delimiter: ';', StripBOM: true})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "1", recs[0]["a"], "la columna 'a' no debe arrastrar el BOM")
}

func TestParse_ComillasRelajadas(t *testing.T) {
	data := []byte("a;b\nvaso \"grande\" azul;2\n")

	recs, err := csvtext.Parse(data, csvtext.Options{Delimiter: ';', LazyQuotes: true})
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, `vaso "grande" azul`, recs[0]["a"])
}

func TestParse_CamposDesajustados_RetornaErrMalformed(t *testing.T) {
	data := []byte("a,b,c\n1,2\n")

	_, err := csvtext.Parse(data, csvtext.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, csvtext.ErrMalformed)
}

func TestParse_BufferVacio_RetornaErrMalformed(t *testing.T) {
	_, err := csvtext.Parse(nil, csvtext.Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, csvtext.ErrMalformed)
}
