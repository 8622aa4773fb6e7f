package export

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/pkg/errors"
	"github.com/storeintelligence/quoting-api/internal/domain"
)

// GenerateCSV monta o CSV de listagem de cotações, com as mesmas colunas da
// planilha
func GenerateCSV(quotes []*domain.Quote) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(listHeaders); err != nil {
		return nil, errors.Wrap(err, "erro ao escrever cabeçalho CSV")
	}

	for _, quote := range quotes {
		record := []string{
			quote.Reference,
			quote.ClientName,
			quote.ServiceType,
			string(quote.Status),
			fmt.Sprintf("%.2f", quote.EstimatedCost),
			quote.CreatedAt.Format("2006-01-02"),
		}
		if err := writer.Write(record); err != nil {
			return nil, errors.Wrap(err, "erro ao escrever linha CSV")
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, errors.Wrap(err, "erro ao finalizar CSV")
	}

	return buf.Bytes(), nil
}
