package eval

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/ewalker544/libsvm-go"
	"github.com/hscells/svmgrid/grid"
	"github.com/hscells/svmgrid/libsvm"
	"github.com/pkg/errors"
)

// Kernel is the SVM kernel a grid is searched for. It decides what the second hyper-parameter of a job means.
type Kernel int

const (
	// Linear kernels search C and the weight of the positive class.
	Linear Kernel = iota
	// RBF kernels search C and gamma.
	RBF
)

// ParseKernel accepts the kernel names and the LIBSVM `-t` numbers (0 and 2).
func ParseKernel(s string) (Kernel, error) {
	switch strings.ToLower(s) {
	case "linear", "lin", "0":
		return Linear, nil
	case "rbf", "2":
		return RBF, nil
	}
	return 0, errors.Errorf("unsupported kernel %q", s)
}

func (k Kernel) String() string {
	if k == RBF {
		return "rbf"
	}
	return "linear"
}

// Type is the LIBSVM `-t` number of the kernel.
func (k Kernel) Type() int {
	if k == RBF {
		return libSvm.RBF
	}
	return libSvm.LINEAR
}

// SVM evaluates a job with k-fold cross-validation of a C-SVC on a LIBSVM problem file. The rate is the AUC of
// the cross-validated decision values.
type SVM struct {
	Problem string
	Folds   int
	Kernel  Kernel
}

// NewSVM creates an SVM evaluator for the problem file.
func NewSVM(problem string, folds int, kernel Kernel) SVM {
	return SVM{Problem: problem, Folds: folds, Kernel: kernel}
}

// Name identifies the problem, folds and kernel.
func (s SVM) Name() string {
	return fmt.Sprintf("svm:%s:%d:%s", s.Problem, s.Folds, s.Kernel)
}

// Parameter returns the LIBSVM parameters of a job.
func (s SVM) Parameter(job grid.Job) *libSvm.Parameter {
	param := libSvm.NewParameter()
	param.SvmType = libSvm.C_SVC
	// The pool already runs one evaluation per worker.
	param.NumCPU = 1
	param.QuietMode = true
	param.C = job.C
	switch s.Kernel {
	case RBF:
		param.KernelType = s.Kernel.Type()
		param.Gamma = job.W
	default:
		param.KernelType = s.Kernel.Type()
		param.NrWeight = 1
		param.WeightLabel = []int{1}
		param.Weight = []float64{job.W}
	}
	return param
}

// StratifiedFolds splits the dataset into k stratified folds: the rows of every class are dealt round-robin over the folds,
// in file order. The result holds the row indices of each fold.
func StratifiedFolds(ds libsvm.Dataset, k int) [][]int {
	folds := make([][]int, k)
	seen := make(map[float64]int)
	for i, r := range ds {
		f := seen[r.Label] % k
		seen[r.Label]++
		folds[f] = append(folds[f], i)
	}
	return folds
}

// Evaluate cross-validates the job and returns the AUC of the decision values of the held-out rows. The model of
// each fold is trained on the remaining rows, which are written to a temporary file for LIBSVM to load.
func (s SVM) Evaluate(job grid.Job) (float64, error) {
	if s.Folds < 2 {
		return 0, errors.Errorf("need at least two folds, got %d", s.Folds)
	}
	f, err := os.Open(s.Problem)
	if err != nil {
		return 0, errors.Wrapf(err, "loading %s", s.Problem)
	}
	ds, err := libsvm.Read(bufio.NewReader(f))
	f.Close()
	if err != nil {
		return 0, errors.Wrapf(err, "loading %s", s.Problem)
	}

	param := s.Parameter(job)
	scores := make([]float64, len(ds))
	for _, test := range StratifiedFolds(ds, s.Folds) {
		model, err := s.train(ds, test, param)
		if err != nil {
			return 0, err
		}
		for _, i := range test {
			scores[i] = decision(model, ds[i].Features)
		}
	}
	return AUC(scores, ds.Labels()), nil
}

// train fits a model on every row that is not held out.
func (s SVM) train(ds libsvm.Dataset, test []int, param *libSvm.Parameter) (*libSvm.Model, error) {
	held := make(map[int]bool, len(test))
	for _, i := range test {
		held[i] = true
	}
	train := make(libsvm.Dataset, 0, len(ds)-len(test))
	for i, r := range ds {
		if !held[i] {
			train = append(train, r)
		}
	}

	f, err := os.CreateTemp("", "svmgrid-fold-*.svm")
	if err != nil {
		return nil, err
	}
	defer os.Remove(f.Name())
	if err := libsvm.Write(f, train); err != nil {
		f.Close()
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	problem, err := libSvm.NewProblem(f.Name(), param)
	if err != nil {
		return nil, errors.Wrap(err, "loading fold")
	}
	model := libSvm.NewModel(param)
	if err := model.Train(problem); err != nil {
		return nil, errors.Wrap(err, "training fold")
	}
	return model, nil
}

// decision is the decision value of x, oriented so that larger values mean the positive class. A model trained on
// a single class has no decision values and scores everything 0.
func decision(model *libSvm.Model, ff libsvm.Features) float64 {
	x := make(map[int]float64, len(ff))
	for _, f := range ff {
		x[f.ID] = f.Value
	}
	label, values := model.PredictValues(x)
	if len(values) == 0 {
		return 0
	}
	// A binary decision value is positive for whichever label the model saw first, so orient it by the prediction.
	if label > 0 {
		return math.Abs(values[0])
	}
	return -math.Abs(values[0])
}
