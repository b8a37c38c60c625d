package instance

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/contrail/controlnode/attr"
	"github.com/contrail/controlnode/bgp"
	"github.com/contrail/controlnode/config"
	"github.com/contrail/controlnode/table"
)

// InstanceMgr owns every routing instance and the route-target index
// replication consults. It always creates the
// distinguished master instance (bgp.MasterInstance) up front, which
// holds the rtarget table peers publish their subscriptions into.
type InstanceMgr struct {
	mu        sync.RWMutex
	instances map[string]*Instance
	rtIndex   map[attr.ExtCommunityValue][]*Instance

	db     *attr.Db
	fabric *RTargetFabric
	log    *logrus.Entry
}

// New creates an InstanceMgr with the master instance already present,
// and its own RTargetFabric wired as every instance table's replicator.
func New(db *attr.Db) *InstanceMgr {
	m := &InstanceMgr{
		instances: make(map[string]*Instance),
		rtIndex:   make(map[attr.ExtCommunityValue][]*Instance),
		db:        db,
		log:       logrus.WithField("pkg", "instance"),
	}
	m.fabric = newRTargetFabric(m)
	master := newInstance(bgp.MasterInstance)
	m.instances[bgp.MasterInstance] = master
	m.wireTable(master.Table(bgp.FamilyRTarget))
	return m
}

// Fabric returns the replication fabric, for wiring into tables created
// outside CreateOrUpdate (e.g. a peer's per-family adj-rib tables).
func (m *InstanceMgr) Fabric() *RTargetFabric { return m.fabric }

func (m *InstanceMgr) wireTable(t *table.Table) {
	t.SetReplicator(m.fabric)
}

// CreateOrUpdate applies cfg, creating the instance on first sight or
// updating its RT sets and re-running replication for any RT that was
// added or removed ( "create/update... driven by
// configuration events").
func (m *InstanceMgr) CreateOrUpdate(cfg config.InstanceConfig) error {
	inst, imp, exp, err := fromConfig(cfg, m.log)
	if err != nil {
		return err
	}

	m.mu.Lock()
	existing, ok := m.instances[cfg.Name]
	if !ok {
		m.instances[cfg.Name] = inst
		existing = inst
	}
	for _, f := range cfg.AddressFamilies {
		m.wireTable(existing.Table(f))
	}
	added, removed := existing.setRTSets(imp, exp)
	m.mu.Unlock()

	m.reindexInstance(existing, added, removed)

	for _, rt := range added {
		m.fabric.onRTAdded(existing, rt)
	}
	for _, rt := range removed {
		m.fabric.onRTRemoved(existing, rt)
	}
	return nil
}

// reindexInstance updates rtIndex for the RTs that changed on inst.
func (m *InstanceMgr) reindexInstance(inst *Instance, added, removed []attr.ExtCommunityValue) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, rt := range added {
		m.rtIndex[rt] = appendUnique(m.rtIndex[rt], inst)
	}
	for _, rt := range removed {
		m.rtIndex[rt] = removeInstance(m.rtIndex[rt], inst)
		if len(m.rtIndex[rt]) == 0 {
			delete(m.rtIndex, rt)
		}
	}
}

func appendUnique(list []*Instance, inst *Instance) []*Instance {
	for _, i := range list {
		if i == inst {
			return list
		}
	}
	return append(list, inst)
}

func removeInstance(list []*Instance, inst *Instance) []*Instance {
	out := list[:0]
	for _, i := range list {
		if i != inst {
			out = append(out, i)
		}
	}
	return out
}

// Delete removes name from the instance set. The master instance may
// never be deleted.
func (m *InstanceMgr) Delete(name string) error {
	if name == bgp.MasterInstance {
		return fmt.Errorf("instance: master instance may not be deleted")
	}
	m.mu.Lock()
	inst, ok := m.instances[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("instance: %q not found", name)
	}
	delete(m.instances, name)
	m.mu.Unlock()

	m.reindexInstance(inst, nil, inst.ImportRTSet())
	return nil
}

// Get returns the named instance, or (nil, false) if it doesn't exist.
func (m *InstanceMgr) Get(name string) (*Instance, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	inst, ok := m.instances[name]
	return inst, ok
}

// Master returns the distinguished master instance.
func (m *InstanceMgr) Master() *Instance {
	inst, _ := m.Get(bgp.MasterInstance)
	return inst
}

// Importers returns every instance whose import set currently contains
// rt, the mapping replication consults on every path settle.
func (m *InstanceMgr) Importers(rt attr.ExtCommunityValue) []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]*Instance(nil), m.rtIndex[rt]...)
}

// Instances returns a snapshot of every known instance, for the
// peer-close sweeper and introspection.
func (m *InstanceMgr) Instances() []*Instance {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Instance, 0, len(m.instances))
	for _, inst := range m.instances {
		out = append(out, inst)
	}
	return out
}
