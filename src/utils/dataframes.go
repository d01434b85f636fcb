package utils

import (
	"sort"
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// SeriesFrame builds a two column frame: indexCol holding index and name
// holding the values. Values are kept as text so frames with gaps can be
// unioned without NaN sentinels.
func SeriesFrame(indexCol, name string, index []string, values []float64) dataframe.DataFrame {
	text := make([]string, len(values))
	for i, v := range values {
		text[i] = strconv.FormatFloat(v, 'f', -1, 64)
	}
	return dataframe.New(
		series.New(index, series.String, indexCol),
		series.New(text, series.String, name),
	)
}

// UnionDataFramesByIndex merges frames on indexCol, sorted by index. Columns
// keep the order in which frames are given; a cell missing from a frame is
// left empty and later frames fill cells earlier ones left empty.
func UnionDataFramesByIndex(indexCol string, frames ...dataframe.DataFrame) dataframe.DataFrame {
	var columns []string
	seen := map[string]bool{indexCol: true}
	merged := map[string]map[string]string{}

	for _, df := range frames {
		if df.Err != nil || !hasCol(df, indexCol) {
			continue
		}
		for _, col := range df.Names() {
			if !seen[col] {
				seen[col] = true
				columns = append(columns, col)
			}
		}
		for key, row := range indexRowsByColumn(df, indexCol) {
			existing, ok := merged[key]
			if !ok {
				merged[key] = row
				continue
			}
			for col, val := range row {
				if val != "" && existing[col] == "" {
					existing[col] = val
				}
			}
		}
	}

	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	finalCols := append([]string{indexCol}, columns...)
	colSeries := make([]series.Series, len(finalCols))
	for i, col := range finalCols {
		data := make([]string, len(keys))
		for j, key := range keys {
			data[j] = merged[key][col]
		}
		colSeries[i] = series.New(data, series.String, col)
	}
	return dataframe.New(colSeries...)
}

func hasCol(df dataframe.DataFrame, colName string) bool {
	for _, name := range df.Names() {
		if name == colName {
			return true
		}
	}
	return false
}

// indexRowsByColumn maps each indexCol value to its row.
func indexRowsByColumn(df dataframe.DataFrame, indexCol string) map[string]map[string]string {
	result := make(map[string]map[string]string, df.Nrow())
	index := df.Col(indexCol)
	for i := 0; i < df.Nrow(); i++ {
		row := map[string]string{}
		for _, col := range df.Names() {
			row[col] = df.Col(col).Elem(i).String()
		}
		result[index.Elem(i).String()] = row
	}
	return result
}
