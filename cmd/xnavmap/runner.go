package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/benz9527/xnavmap/lib/bimap"
	"github.com/benz9527/xnavmap/lib/infra"
	"github.com/benz9527/xnavmap/lib/tree"
	"github.com/benz9527/xnavmap/xlog"
)

const none = "<none>"

type runner struct {
	cfg    *config
	logger xlog.XLogger
	out    io.Writer
}

func newRunner(cfg *config, logger xlog.XLogger, out io.Writer) *runner {
	return &runner{
		cfg:    cfg,
		logger: logger,
		out:    out,
	}
}

func (r *runner) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func joinKeys[K any](keys []K) string {
	return "[" + strings.Join(lo.Map(keys, func(k K, _ int) string {
		return fmt.Sprint(k)
	}), ", ") + "]"
}

func describe[K any](key K, ok bool, err error) string {
	if err != nil {
		return "error: " + err.Error()
	}
	if !ok {
		return none
	}
	return fmt.Sprint(key)
}

func (r *runner) dump(title string, t tree.RBTree[int, any]) error {
	if !r.cfg.Dump {
		return nil
	}
	r.printf("-- %s\n", title)
	return tree.Dump[int, any](r.out, t)
}

func (r *runner) validate(t tree.RBTree[int, any]) error {
	return multierr.Combine(
		tree.RootColorValidate[int, any](t),
		tree.RedViolationValidate[int, any](t),
		tree.BlackViolationValidate[int, any](t),
		tree.BSTOrderValidate[int, any](t, infra.NaturalOrderComparator[int]()),
	)
}

func (r *runner) run(ctx context.Context) error {
	ctx = xlog.ContextWithField(ctx, "scenario", "rbtree")
	if err := r.runTree(ctx); err != nil {
		r.logger.ErrorStack(err, "[xnavmap] rbtree scenario failed")
		return err
	}
	ctx = xlog.ContextWithField(ctx, "scenario", "bimap")
	if err := r.runBiMap(ctx); err != nil {
		r.logger.ErrorStack(err, "[xnavmap] bimap scenario failed")
		return err
	}
	return nil
}

func (r *runner) runTree(ctx context.Context) error {
	t := tree.NewRBTree[int, any]()
	for _, key := range r.cfg.Keys {
		if err := t.Put(key, "v"+strconv.Itoa(key)); err != nil {
			return err
		}
	}
	r.logger.InfoContext(ctx, "[xnavmap] keys inserted", zap.Int64("size", t.Len()))
	r.printf("keys: %s\n", joinKeys(t.Keys()))
	r.printf("tree: %s\n", t.String())
	if err := r.dump("after insert", t); err != nil {
		return err
	}

	first, ok := t.FirstKey()
	r.printf("firstKey = %s\n", describe(first, ok, nil))
	last, ok := t.LastKey()
	r.printf("lastKey = %s\n", describe(last, ok, nil))
	for _, probe := range []int{first, 5, last} {
		lower, ok, err := t.LowerKey(probe)
		r.printf("lowerKey(%d) = %s\n", probe, describe(lower, ok, err))
		floor, ok, err := t.FloorKey(probe)
		r.printf("floorKey(%d) = %s\n", probe, describe(floor, ok, err))
		ceiling, ok, err := t.CeilingKey(probe)
		r.printf("ceilingKey(%d) = %s\n", probe, describe(ceiling, ok, err))
		higher, ok, err := t.HigherKey(probe)
		r.printf("higherKey(%d) = %s\n", probe, describe(higher, ok, err))
	}

	if err := t.Put(4, "v4_new"); err != nil {
		return err
	}
	val, ok, err := t.Get(4)
	r.printf("get(4) after update = %s\n", describe(val, ok, err))

	// A leaf, the maximum and a node with two children.
	for _, key := range []int{1, 9, 3} {
		removed, ok, err := t.Remove(key)
		if err != nil {
			return err
		}
		r.logger.DebugContext(ctx, "[xnavmap] key removed", zap.Int("key", key), zap.Bool("existed", ok))
		r.printf("remove(%d) = %s\n", key, describe(removed, ok, nil))
		if err = r.dump("after remove "+strconv.Itoa(key), t); err != nil {
			return err
		}
		if err = r.validate(t); err != nil {
			return err
		}
	}
	r.printf("containsKey(3) = %t, size = %d\n", t.ContainsKey(3), t.Len())

	if err = t.Put(100, nil); err != nil {
		return err
	}
	val, ok, err = t.Get(100)
	r.printf("get(100) = %v, present = %t\n", val, ok)
	if err != nil {
		return err
	}

	if err = t.Foreach(func(idx int64, key int, val any) bool {
		r.printf("  #%d %d=%v\n", idx, key, val)
		return true
	}); err != nil {
		return err
	}

	t.Clear()
	r.printf("after clear: size = %d, isEmpty = %t\n", t.Len(), t.IsEmpty())
	return r.dump("after clear", t)
}

func (r *runner) runBiMap(ctx context.Context) error {
	m := bimap.New[int, string](bimap.WithLogger[int, string](r.logger))
	var err error
	for _, e := range []struct {
		key int
		val string
	}{{1, "one"}, {2, "two"}, {3, "three"}} {
		err = multierr.Append(err, m.Put(e.key, e.val))
	}
	if err != nil {
		return err
	}
	r.logger.InfoContext(ctx, "[xnavmap] bimap filled", zap.Int64("size", m.Len()))
	r.printf("bimap: %s\n", m.String())

	val, ok, err := m.Get(2)
	r.printf("get(2) = %s\n", describe(val, ok, err))
	key, ok, err := m.GetKey("three")
	r.printf("getKey(three) = %s\n", describe(key, ok, err))

	if err = m.Put(1, "uno"); err != nil {
		return err
	}
	r.printf("after put(1, uno): %s, containsValue(one) = %t\n", m.String(), m.ContainsValue("one"))

	key, ok, err = m.RemoveValue("two")
	if err != nil {
		return err
	}
	r.printf("removeValue(two) = %s, containsKey(2) = %t\n", describe(key, ok, nil), m.ContainsKey(2))
	r.printf("keys: %s, values: %s\n", joinKeys(m.Keys()), joinKeys(m.Values()))

	m.Clear()
	r.printf("after clear: size = %d, isEmpty = %t\n", m.Len(), m.IsEmpty())
	return nil
}
