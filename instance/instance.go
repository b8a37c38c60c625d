// Package instance implements the routing-instance manager and the
// route-target fabric that replicates routes between VRFs. Grounded on
// original_source/src/bgp/routing-instance/routing_instance.{h,cc}
// (RoutingInstance, RoutingInstanceMgr) and rtarget/rtarget_table.cc
// (the master instance's rtarget table), re-expressed against this
// core's table.Table/table.Replicator rather than the original's
// BgpTable/RTargetGroupMgr split.
package instance

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/config"
	"github.com/contrail/controlnode/table"
)

// Instance is one routing instance (VRF): a named set of per-family
// tables plus the import/export route-target sets that drive
// replication.
type Instance struct {
	Name string

	mu        sync.RWMutex
	importRT  map[attr.ExtCommunityValue]struct{}
	exportRT  []attr.ExtCommunityValue
	tables    map[bgp.Family]*table.Table
	vnIndex   int
}

func newInstance(name string) *Instance {
	return &Instance{
		Name:     name,
		importRT: make(map[attr.ExtCommunityValue]struct{}),
		tables:   make(map[bgp.Family]*table.Table),
	}
}

// Table returns the per-family table for f, creating it if this is the
// first reference. It does not wire a replicator into a new table.
func (i *Instance) Table(f bgp.Family) *table.Table {
	i.mu.Lock()
	defer i.mu.Unlock()
	t, ok := i.tables[f]
	if !ok {
		t = table.New(i.Name+"."+f.String(), f, 0)
		i.tables[f] = t
	}
	return t
}

// Tables returns a snapshot of every family table this instance has
// created so far.
func (i *Instance) Tables() map[bgp.Family]*table.Table {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make(map[bgp.Family]*table.Table, len(i.tables))
	for f, t := range i.tables {
		out[f] = t
	}
	return out
}

// ImportRT reports whether rt is in this instance's import set.
func (i *Instance) ImportRT(rt attr.ExtCommunityValue) bool {
	i.mu.RLock()
	defer i.mu.RUnlock()
	_, ok := i.importRT[rt]
	return ok
}

// ImportRTSet returns a snapshot of the import RT set.
func (i *Instance) ImportRTSet() []attr.ExtCommunityValue {
	i.mu.RLock()
	defer i.mu.RUnlock()
	out := make([]attr.ExtCommunityValue, 0, len(i.importRT))
	for rt := range i.importRT {
		out = append(out, rt)
	}
	return out
}

// ExportRTSet returns the configured export RT set. Nothing in this
// package applies it to routes leaving the instance.
func (i *Instance) ExportRTSet() []attr.ExtCommunityValue {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return append([]attr.ExtCommunityValue(nil), i.exportRT...)
}

func (i *Instance) setRTSets(imp map[attr.ExtCommunityValue]struct{}, exp []attr.ExtCommunityValue) (added, removed []attr.ExtCommunityValue) {
	i.mu.Lock()
	defer i.mu.Unlock()
	for rt := range imp {
		if _, had := i.importRT[rt]; !had {
			added = append(added, rt)
		}
	}
	for rt := range i.importRT {
		if _, have := imp[rt]; !have {
			removed = append(removed, rt)
		}
	}
	i.importRT = imp
	i.exportRT = exp
	return added, removed
}

func fromConfig(cfg config.InstanceConfig, log *logrus.Entry) (*Instance, map[attr.ExtCommunityValue]struct{}, []attr.ExtCommunityValue, error) {
	imp, err := parseRTSet(cfg.ImportRTSet)
	if err != nil {
		return nil, nil, nil, err
	}
	expSet, err := parseRTSet(cfg.ExportRTSet)
	if err != nil {
		return nil, nil, nil, err
	}
	exp := make([]attr.ExtCommunityValue, 0, len(expSet))
	for rt := range expSet {
		exp = append(exp, rt)
	}
	inst := newInstance(cfg.Name)
	inst.vnIndex = cfg.VNIndex
	log.WithFields(logrus.Fields{"instance": cfg.Name, "import": len(imp), "export": len(exp)}).Debug("instance config decoded")
	return inst, imp, exp, nil
}
