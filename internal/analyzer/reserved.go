package analyzer

// Schema marker base classes. A class inheriting any of these (or an
// already-collected schema) declares a schema.
var schemaBases = map[string]struct{}{
	"BaseSchema":     {},
	"DataFrameModel": {},
	"DataFrame":      {},
	"BaseFrame":      {},
}

func isSchemaBase(name string) bool {
	_, ok := schemaBases[name]
	return ok
}

// Frame wrapper types recognized in annotations and constructor calls.
var frameTypes = []string{"DataFrame", "PandasFrame", "PolarsFrame"}

// Constructor-like method names that produce a typed frame.
var factoryMethods = map[string]struct{}{
	"from_schema":  {},
	"from_pandas":  {},
	"from_polars":  {},
	"read_csv":     {},
	"read_parquet": {},
	"read_json":    {},
	"read_excel":   {},
}

func isFactoryMethod(name string) bool {
	_, ok := factoryMethods[name]
	return ok
}

// reservedAccessors lists pandas/polars attribute and method names that a
// typed frame legitimately exposes. Accessing one of these is never a
// column lookup, and a column declared with one of these names shadows
// the method.
var reservedAccessors = []string{
	"shape", "columns", "index", "iloc", "loc", "head", "tail",
	"describe", "info", "set_index", "merge", "concat", "join",
	"filter", "select", "with_columns", "group_by", "groupby",
	"agg", "sort", "sort_values", "drop", "rename", "apply",
	"map", "pipe", "transform", "to_pandas", "to_df", "schema",
	"dtypes", "dtype", "cast", "lazy", "collect", "to_dict",
	"to_list", "to_numpy", "to_arrow", "write_csv", "write_parquet",
	"clone", "clear", "extend", "insert", "item", "n_chunks",
	"null_count", "estimated_size", "width", "height", "rows",
	"row", "get_column", "get_columns", "explode", "unnest",
	"pivot", "unpivot", "melt", "sample", "slice", "limit",
	"unique", "n_unique", "value_counts", "is_empty", "is_duplicated",
	"unique_counts", "mean", "sum", "min", "max", "std", "var",
	"median", "quantile", "fill_null", "fill_nan", "interpolate",
	"shift", "diff", "pct_change", "rolling", "ewm", "count",
	"first", "last", "len", "all", "any", "copy", "values",
	"T", "axes", "empty", "ndim", "size", "keys", "items",
	"pop", "update", "get", "add", "sub", "mul", "div", "mod",
	"pow", "abs", "round", "floor", "ceil", "clip", "corr", "cov",
}
