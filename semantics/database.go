package semantics

import (
	"go.uber.org/zap"

	"github.com/mxmlextrema/mxmlcaot/common"
)

// Database is the semantic context of a compilation unit.  It owns the arena
// of every entity, the interning tables of derived types and slots, the cache
// of well-known types and the global namespaces.
//
// A Database is not safe for concurrent use: confine it to one goroutine or
// guard it with a single lock.
type Database struct {
	arena []*Entity

	logger *zap.Logger

	factory     *Factory
	conversions *Conversions
	lookup      *PropertyLookup
	override    *MethodOverride
	implement   *InterfaceImplement
	unused      *Unused

	nodeMapping      *NodeMapping
	nodeInvalidation *NodeInvalidation

	projectPath           string
	configConstants       map[string]string
	configConstantsResult map[string]*Entity
	env                   map[string]string

	unusedThings []*Entity

	explicitNamespaces map[string]*Entity
	userNamespaces     map[string]*Entity
	qnames             qnameInterner

	invalidation *Entity
	unresolved   *Entity

	topLevelPackage  *Entity
	vecPackage       *Entity
	utilsPackageName []string
	utilsPackage     *Entity

	anyType  *Entity
	voidType *Entity

	// Well-known types resolved on first successful lookup.
	objectType, booleanType, numberType, intType, uintType, floatType *Entity
	stringType, arrayType, namespaceType, functionType, classType     *Entity
	xmlType, xmlListType, regExpType, dateType, promiseType           *Entity
	vectorType, proxyType, dictionaryType, byteArrayType              *Entity

	proxyNs         *Entity
	as3Ns           *Entity
	emptyEmptyQName *QName
	constEvalScope  *Entity
	metaProp        *Entity
	metaEnvProp     *Entity

	primitiveTypes        []*Entity
	nonNullPrimitiveTypes []*Entity
	numericTypes          []*Entity
	floatingPointTypes    []*Entity
	integerTypes          []*Entity

	typesAfterSub    internTable
	functionTypes    internTable
	tupleTypes       internTable
	nullableTypes    map[*Entity]*Entity
	nonNullableTypes map[*Entity]*Entity
	varSlotsAfterSub internTable
	virSlotsAfterSub internTable
	metSlotsAfterSub internTable
}

// NewDatabase creates a new semantic database with the given options.  Zero
// option fields take their defaults.
func NewDatabase(options DatabaseOptions) *Database {
	defaults := DefaultDatabaseOptions()
	if options.AS3NamespaceURI == "" {
		options.AS3NamespaceURI = defaults.AS3NamespaceURI
	}

	if options.ProxyNamespaceURI == "" {
		options.ProxyNamespaceURI = defaults.ProxyNamespaceURI
	}

	if len(options.UtilsPackage) == 0 {
		options.UtilsPackage = defaults.UtilsPackage
	}

	db := &Database{
		logger:                zap.NewNop(),
		projectPath:           options.ProjectPath,
		configConstants:       make(map[string]string),
		configConstantsResult: make(map[string]*Entity),
		explicitNamespaces:    make(map[string]*Entity),
		userNamespaces:        make(map[string]*Entity),
		qnames:                make(qnameInterner),
		utilsPackageName:      options.UtilsPackage,
		typesAfterSub:         newInternTable(),
		functionTypes:         newInternTable(),
		tupleTypes:            newInternTable(),
		nullableTypes:         make(map[*Entity]*Entity),
		nonNullableTypes:      make(map[*Entity]*Entity),
		varSlotsAfterSub:      newInternTable(),
		virSlotsAfterSub:      newInternTable(),
		metSlotsAfterSub:      newInternTable(),
		nodeMapping:           newNodeMapping(),
		nodeInvalidation:      newNodeInvalidation(),
	}

	for k, v := range options.ConfigConstants {
		db.configConstants[k] = v
	}

	db.factory = &Factory{db: db}
	db.conversions = &Conversions{db: db}
	db.lookup = &PropertyLookup{db: db}
	db.override = &MethodOverride{db: db}
	db.implement = &InterfaceImplement{db: db}
	db.unused = &Unused{db: db}

	db.anyType = db.alloc(KindAnyType)
	db.voidType = db.alloc(KindVoidType)
	db.invalidation = db.alloc(KindInvalidation)
	db.unresolved = db.alloc(KindUnresolved)

	db.topLevelPackage = db.alloc(KindPackage)
	db.topLevelPackage.properties = NewNames()
	db.topLevelPackage.publicNs = db.factory.CreatePublicNs(db.topLevelPackage)
	db.topLevelPackage.internalNs = db.factory.CreateInternalNs(db.topLevelPackage)

	db.metaProp = db.alloc(KindMetaProperty)
	db.metaProp.staticType = db.anyType
	db.metaEnvProp = db.alloc(KindMetaEnvProperty)
	db.metaEnvProp.staticType = db.anyType

	db.proxyNs = db.factory.CreateUserNs(options.ProxyNamespaceURI)
	db.as3Ns = db.factory.CreateUserNs(options.AS3NamespaceURI)
	db.emptyEmptyQName = db.factory.CreateQName(db.factory.CreateUserNs(""), "")

	db.constEvalScope = db.factory.CreateScope()
	db.constEvalScope.AddImport(db.factory.CreatePackageWildcardImport(db.topLevelPackage))
	db.constEvalScope.OpenNs(db.as3Ns)

	return db
}

// WithLogger sets the logger used for debug tracing and returns the database.
func (db *Database) WithLogger(logger *zap.Logger) *Database {
	if logger == nil {
		logger = zap.NewNop()
	}

	db.logger = logger
	return db
}

// Logger returns the debug logger of the database.
func (db *Database) Logger() *zap.Logger {
	return db.logger
}

// alloc allocates a new entity into the arena.
func (db *Database) alloc(kind Kind) *Entity {
	e := &Entity{kind: kind, id: len(db.arena)}
	db.arena = append(db.arena, e)
	return e
}

// EntityCount returns the number of entities allocated in the arena.
func (db *Database) EntityCount() int {
	return len(db.arena)
}

// EntityByID returns the entity with the given arena handle or nil.
func (db *Database) EntityByID(id int) *Entity {
	if id < 0 || id >= len(db.arena) {
		return nil
	}

	return db.arena[id]
}

// -----------------------------------------------------------------------------

// Factory returns the constructor surface of the database.
func (db *Database) Factory() *Factory { return db.factory }

// Conversions returns the conversion engine of the database.
func (db *Database) Conversions() *Conversions { return db.conversions }

// PropertyLookup returns the property lookup of the database.
func (db *Database) PropertyLookup() *PropertyLookup { return db.lookup }

// MethodOverride returns the method override verifier of the database.
func (db *Database) MethodOverride() *MethodOverride { return db.override }

// InterfaceImplement returns the interface implementation verifier of the
// database.
func (db *Database) InterfaceImplement() *InterfaceImplement { return db.implement }

// Unused returns the unused entity tracker of the database.
func (db *Database) Unused() *Unused { return db.unused }

// NodeMapping returns the mapping from syntax nodes to entities.
func (db *Database) NodeMapping() *NodeMapping { return db.nodeMapping }

// NodeInvalidation returns the set of invalidated syntax nodes.
func (db *Database) NodeInvalidation() *NodeInvalidation { return db.nodeInvalidation }

// -----------------------------------------------------------------------------

// ConfigConstants returns the mutable mapping of configuration constants used
// for conditional compilation.
func (db *Database) ConfigConstants() map[string]string {
	return db.configConstants
}

// ConfigConstantsResult returns the mutable mapping of configuration constants
// to their evaluated entity.
func (db *Database) ConfigConstantsResult() map[string]*Entity {
	return db.configConstantsResult
}

// ClearConfigConstants removes every configuration constant and every
// evaluated result.
func (db *Database) ClearConfigConstants() {
	clear(db.configConstants)
	clear(db.configConstantsResult)
}

// EmptyEmptyQName returns the qualified name with an empty URI and an empty
// local name.
func (db *Database) EmptyEmptyQName() *QName {
	return db.emptyEmptyQName
}

// ConstEvalScope returns the scope used for evaluating configuration
// constants.
func (db *Database) ConstEvalScope() *Entity {
	return db.constEvalScope
}

// TopLevelPackage returns the unnamed top-level package.
func (db *Database) TopLevelPackage() *Entity {
	return db.topLevelPackage
}

// VecPackage returns the `__AS3__.vec` package.
func (db *Database) VecPackage() *Entity {
	if db.vecPackage == nil {
		db.vecPackage = db.factory.CreatePackage(common.VectorPackage...)
	}

	return db.vecPackage
}

// UtilsPackage returns the package holding the utility types.
func (db *Database) UtilsPackage() *Entity {
	if db.utilsPackage == nil {
		db.utilsPackage = db.factory.CreatePackage(db.utilsPackageName...)
	}

	return db.utilsPackage
}

// Invalidation returns the invalidation sentinel.
func (db *Database) Invalidation() *Entity { return db.invalidation }

// Unresolved returns the unresolved sentinel.
func (db *Database) Unresolved() *Entity { return db.unresolved }

// AnyType returns the `*` type.
func (db *Database) AnyType() *Entity { return db.anyType }

// VoidType returns the `void` type.
func (db *Database) VoidType() *Entity { return db.voidType }

// MetaProperty returns the `import.meta` value.
func (db *Database) MetaProperty() *Entity { return db.metaProp }

// MetaEnvProperty returns the `import.meta.env` value.
func (db *Database) MetaEnvProperty() *Entity { return db.metaEnvProp }

// ProxyNamespace returns the `flash_proxy` compliant namespace.
func (db *Database) ProxyNamespace() *Entity { return db.proxyNs }

// AS3Namespace returns the builtin language namespace.
func (db *Database) AS3Namespace() *Entity { return db.as3Ns }

// lookupPublic resolves a public definition of a package, caching it once
// resolved.  Unresolved is returned and not cached if the definition does not
// exist yet.
func (db *Database) lookupPublic(cache **Entity, pckg *Entity, localName string) *Entity {
	if *cache != nil {
		return *cache
	}

	if r := pckg.properties.Get(db.factory.CreateQName(pckg.publicNs, localName)); r != nil {
		*cache = r
		return r
	}

	return db.unresolved
}

// ObjectType returns the `Object` class, possibly unresolved.
func (db *Database) ObjectType() *Entity {
	return db.lookupPublic(&db.objectType, db.topLevelPackage, "Object")
}

// BooleanType returns the `Boolean` class, possibly unresolved.
func (db *Database) BooleanType() *Entity {
	return db.lookupPublic(&db.booleanType, db.topLevelPackage, "Boolean")
}

// NumberType returns the `Number` class, possibly unresolved.
func (db *Database) NumberType() *Entity {
	return db.lookupPublic(&db.numberType, db.topLevelPackage, "Number")
}

// IntType returns the `int` class, possibly unresolved.
func (db *Database) IntType() *Entity {
	return db.lookupPublic(&db.intType, db.topLevelPackage, "int")
}

// UintType returns the `uint` class, possibly unresolved.
func (db *Database) UintType() *Entity {
	return db.lookupPublic(&db.uintType, db.topLevelPackage, "uint")
}

// FloatType returns the `float` class, possibly unresolved.
func (db *Database) FloatType() *Entity {
	return db.lookupPublic(&db.floatType, db.topLevelPackage, "float")
}

// StringType returns the `String` class, possibly unresolved.
func (db *Database) StringType() *Entity {
	return db.lookupPublic(&db.stringType, db.topLevelPackage, "String")
}

// ArrayType returns the `Array` class, possibly unresolved.
func (db *Database) ArrayType() *Entity {
	return db.lookupPublic(&db.arrayType, db.topLevelPackage, "Array")
}

// NamespaceType returns the `Namespace` class, possibly unresolved.
func (db *Database) NamespaceType() *Entity {
	return db.lookupPublic(&db.namespaceType, db.topLevelPackage, "Namespace")
}

// FunctionType returns the `Function` class, possibly unresolved.
func (db *Database) FunctionType() *Entity {
	return db.lookupPublic(&db.functionType, db.topLevelPackage, "Function")
}

// ClassType returns the `Class` class, possibly unresolved.
func (db *Database) ClassType() *Entity {
	return db.lookupPublic(&db.classType, db.topLevelPackage, "Class")
}

// XMLType returns the `XML` class, possibly unresolved.
func (db *Database) XMLType() *Entity {
	return db.lookupPublic(&db.xmlType, db.topLevelPackage, "XML")
}

// XMLListType returns the `XMLList` class, possibly unresolved.
func (db *Database) XMLListType() *Entity {
	return db.lookupPublic(&db.xmlListType, db.topLevelPackage, "XMLList")
}

// RegExpType returns the `RegExp` class, possibly unresolved.
func (db *Database) RegExpType() *Entity {
	return db.lookupPublic(&db.regExpType, db.topLevelPackage, "RegExp")
}

// DateType returns the `Date` class, possibly unresolved.
func (db *Database) DateType() *Entity {
	return db.lookupPublic(&db.dateType, db.topLevelPackage, "Date")
}

// PromiseType returns the `Promise` class, possibly unresolved.
func (db *Database) PromiseType() *Entity {
	return db.lookupPublic(&db.promiseType, db.topLevelPackage, "Promise")
}

// VectorType returns the `__AS3__.vec.Vector` class, possibly unresolved.
func (db *Database) VectorType() *Entity {
	return db.lookupPublic(&db.vectorType, db.VecPackage(), "Vector")
}

// ProxyType returns the utility `Proxy` class, possibly unresolved.
func (db *Database) ProxyType() *Entity {
	return db.lookupPublic(&db.proxyType, db.UtilsPackage(), "Proxy")
}

// DictionaryType returns the utility `Dictionary` class, possibly unresolved.
func (db *Database) DictionaryType() *Entity {
	return db.lookupPublic(&db.dictionaryType, db.UtilsPackage(), "Dictionary")
}

// ByteArrayType returns the utility `ByteArray` class, possibly unresolved.
func (db *Database) ByteArrayType() *Entity {
	return db.lookupPublic(&db.byteArrayType, db.UtilsPackage(), "ByteArray")
}

// typeOfAny instantiates a parameterized type with `*` as its single argument.
func (db *Database) typeOfAny(origin *Entity) (*Entity, error) {
	if err := deferred(origin); err != nil {
		return nil, err
	}

	return db.factory.CreateTypeAfterSubstitution(origin, []*Entity{db.anyType}), nil
}

// ArrayTypeOfAny returns `Array.<*>`.
func (db *Database) ArrayTypeOfAny() (*Entity, error) {
	return db.typeOfAny(db.ArrayType())
}

// VectorTypeOfAny returns `Vector.<*>`.
func (db *Database) VectorTypeOfAny() (*Entity, error) {
	return db.typeOfAny(db.VectorType())
}

// PromiseTypeOfAny returns `Promise.<*>`.
func (db *Database) PromiseTypeOfAny() (*Entity, error) {
	return db.typeOfAny(db.PromiseType())
}

// -----------------------------------------------------------------------------

// typeSet resolves every type of a set, deferring if any is unresolved.
func (db *Database) typeSet(cache *[]*Entity, types ...*Entity) ([]*Entity, error) {
	if *cache != nil {
		return *cache, nil
	}

	for _, t := range types {
		if err := deferred(t); err != nil {
			return nil, err
		}
	}

	*cache = types
	return types, nil
}

// PrimitiveTypes returns `void`, `String`, `Boolean`, `Number`, `int`, `uint`
// and `float`.
func (db *Database) PrimitiveTypes() ([]*Entity, error) {
	return db.typeSet(&db.primitiveTypes, db.voidType, db.StringType(), db.BooleanType(),
		db.NumberType(), db.IntType(), db.UintType(), db.FloatType())
}

// NonNullPrimitiveTypes returns `Boolean`, `Number`, `int`, `uint` and
// `float`.
func (db *Database) NonNullPrimitiveTypes() ([]*Entity, error) {
	return db.typeSet(&db.nonNullPrimitiveTypes, db.BooleanType(), db.NumberType(),
		db.IntType(), db.UintType(), db.FloatType())
}

// NumericTypes returns `Number`, `int`, `uint` and `float`.
func (db *Database) NumericTypes() ([]*Entity, error) {
	return db.typeSet(&db.numericTypes, db.NumberType(), db.IntType(), db.UintType(), db.FloatType())
}

// FloatingPointTypes returns `Number` and `float`.
func (db *Database) FloatingPointTypes() ([]*Entity, error) {
	return db.typeSet(&db.floatingPointTypes, db.NumberType(), db.FloatType())
}

// IntegerTypes returns `int` and `uint`.
func (db *Database) IntegerTypes() ([]*Entity, error) {
	return db.typeSet(&db.integerTypes, db.IntType(), db.UintType())
}

// -----------------------------------------------------------------------------

// unusedList returns the entities currently flagged as unused.
func (db *Database) unusedList() []*Entity {
	return db.unusedThings
}

func (db *Database) isUnused(e *Entity) bool {
	return containsEntity(db.unusedThings, e)
}

func (db *Database) addUnusedThing(e *Entity) {
	db.unusedThings = append(db.unusedThings, e)
}

func (db *Database) removeUnusedThing(e *Entity) {
	for i, item := range db.unusedThings {
		if item == e {
			db.unusedThings = append(db.unusedThings[:i], db.unusedThings[i+1:]...)
			return
		}
	}
}
