package library

// DefaultAliases is the legacy alias table mapping bare class names, as they
// appear in hand-written pipeline documents, to catalog component ids. Older
// documents reference operators by short class name instead of the fully
// qualified path; the table lets both forms resolve to the same component.
//
// The table is injected at index construction (see WithAliases) so tests and
// embedders can substitute alternate sets.
var DefaultAliases = map[string]string{
	// nirs4all spectral operators
	"Baseline":                        "baseline",
	"Detrend":                         "detrend",
	"MultiplicativeScatterCorrection": "multiplicative_scatter_correction",
	"MSC":                             "multiplicative_scatter_correction",
	"StandardNormalVariate":           "standard_normal_variate",
	"SNV":                             "standard_normal_variate",
	"RobustNormalVariate":             "robust_normal_variate",
	"SavitzkyGolay":                   "savitzky_golay",
	"Gaussian":                        "gaussian_smoothing",
	"FirstDerivative":                 "first_derivative",
	"SecondDerivative":                "second_derivative",
	"Derivate":                        "derivate_samples",
	"Haar":                            "haar_wavelet",
	"LogTransform":                    "log_transform",
	"Normalize":                       "normalize_rows",
	"SimpleScale":                     "simple_scale",
	"CropTransformer":                 "crop_transformer",
	"ResampleTransformer":             "resample_transformer",
	"Resampler":                       "resampler",
	"IdentityAugmenter":               "identity_augmenter",
	"Rotate_Translate":                "rotate_translate",
	"Random_X_Operation":              "random_x_operation",
	"Spline_Smoothing":                "spline_smoothing",

	// scikit-learn transformers and decompositions
	"MinMaxScaler":   "min_max_scaler",
	"StandardScaler": "standard_scaler",
	"RobustScaler":   "robust_scaler",
	"MaxAbsScaler":   "max_abs_scaler",
	"PCA":            "pca",

	// scikit-learn estimators
	"PLSRegression": "pls_regression",

	// splitters
	"ShuffleSplit":               "shuffle_split",
	"KFold":                      "kfold",
	"StratifiedKFold":            "stratified_kfold",
	"GroupKFold":                 "group_kfold",
	"RepeatedKFold":              "repeated_kfold",
	"RepeatedStratifiedKFold":    "repeated_stratified_kfold",
	"StratifiedShuffleSplit":     "stratified_shuffle_split",
	"GroupShuffleSplit":          "group_shuffle_split",
	"TimeSeriesSplit":            "time_series_split",
	"LeaveOneOut":                "leave_one_out",
	"LeavePOut":                  "leave_p_out",
	"KennardStoneSplitter":       "kennard_stone",
	"SPXYSplitter":               "spxy_splitter",
	"KMeansSplitter":             "kmeans_splitter",
	"SPlitSplitter":              "split_splitter",
	"SystematicCircularSplitter": "systematic_circular",
	"KBinsStratifiedSplitter":    "kbins_stratified",

	// target transforms
	"IntegerKBinsDiscretizer": "integer_kbins_discretizer",
	"RangeDiscretizer":        "range_discretizer",
}
