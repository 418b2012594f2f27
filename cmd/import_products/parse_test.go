package main

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = "codigo;nombre;descripcion;precio_compra;precio_venta;stock;stock_minimo\n" +
	"A1;Azúcar rubia;bolsa 1kg;3,10;4,20;50;10\n" +
	"A2;Café;;12.00;15.50;0;2\n"

func TestParseProducts_UTF8Semicolon(t *testing.T) {
	products, errs := parseProducts(strings.NewReader(sample), false)
	require.Empty(t, errs)
	require.Len(t, products, 2)

	assert.Equal(t, "Azúcar rubia", products[0].Name)
	assert.True(t, products[0].SalePrice.Equal(decimal.RequireFromString("4.20")))
	assert.True(t, products[0].PurchasePrice.Equal(decimal.RequireFromString("3.10")))
	assert.Equal(t, 50, products[0].Stock)
	assert.Equal(t, 10, products[0].MinStock)
	assert.Equal(t, "Café", products[1].Name)
}

func TestParseProducts_Latin1(t *testing.T) {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(sample)
	require.NoError(t, err)

	// sin forzar: el contenido no es UTF-8 válido y se detecta como latin-1
	products, errs := parseProducts(strings.NewReader(encoded), false)
	require.Empty(t, errs)
	require.Len(t, products, 2)
	assert.Equal(t, "Azúcar rubia", products[0].Name)
	assert.Equal(t, "Café", products[1].Name)
}

func TestParseProducts_CommaAndBOM(t *testing.T) {
	in := "\ufeffcodigo,nombre,precio_venta\nX1,Sal,\"1,234.50\"\n"
	products, errs := parseProducts(strings.NewReader(in), false)
	require.Empty(t, errs)
	require.Len(t, products, 1)
	assert.True(t, products[0].SalePrice.Equal(decimal.RequireFromString("1234.50")))
}

func TestParseProducts_RowErrors(t *testing.T) {
	in := "codigo;nombre;precio_venta;stock\n" +
		"B1;Arroz;4,00;diez\n" +
		";;;\n" +
		"B2;;3,00;1\n" +
		"B3;Fideos;2,50;8\n"
	products, errs := parseProducts(strings.NewReader(in), false)
	require.Len(t, products, 1)
	assert.Equal(t, "B3", products[0].Code)
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0].Error(), "línea 2")
	assert.Contains(t, errs[1].Error(), "línea 4")
}

func TestParseProducts_MissingColumn(t *testing.T) {
	_, errs := parseProducts(strings.NewReader("codigo;nombre\nA;B\n"), false)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "precio_venta")
}
