package report

// Technical tables of section 3. Each returns label/value pairs in the
// order they are printed.

func generalInformation(in *Inspection) [][2]string {
	return [][2]string{
		{"Normes de référence", clean(in.ReferenceStandards)},
		{"N° appareil installateur / mainteneur", clean(in.InstallerMaintainerNumber)},
		{"Type appareil", clean(in.DeviceType)},
		{"Type bâtiment", clean(in.BuildingType)},
		{"ERP", clean(in.ERP)},
		{"IGH", clean(in.IGH)},
		{"ERT", clean(in.ERT)},
		{"Emplacement de l'installation", clean(in.InstallationLocation)},
		{"Situation de l'installation", clean(in.InstallationSituation)},
		{"Nombre d'étage du bâtiment", clean(in.BuildingFloors)},
		{"Marque origine", clean(in.OriginalBrand)},
		{"Marque entretien", clean(in.MaintenanceBrand)},
		{"Date installation", clean(in.InstallationDate)},
		{"Appareil rénové", clean(in.DeviceRenovated)},
		{"Date de rénovation", clean(in.RenovationDate)},
	}
}

func mainCharacteristics(in *Inspection) [][2]string {
	return [][2]string{
		{"Charge nominale", clean(in.NominalLoad)},
		{"Nombre de personnes", clean(in.PersonCount)},
		{"Type régulation de vitesse", clean(in.SpeedRegulationType)},
		{"Nombre de face d'accès", clean(in.AccessFacesCount)},
		{"Vitesse nominale", clean(in.NominalSpeed)},
		{"Nombre de niveaux", clean(in.LevelsCount)},
		{"Désignation des niveaux", clean(in.LevelsDesignation)},
		{"Course d'élévation", clean(in.ElevationTravel)},
		{"Type de technologie", clean(in.TechnologyType)},
		{"Marque de l'armoire de commande", clean(in.ControlCabinetBrand)},
		{"Type de manœuvre", clean(in.ManeuverType)},
		{"Marque de la traction", clean(in.TractionBrandReference)},
		{"Type de traction", clean(in.TractionType)},
		{"Nombre de câbles de traction", clean(in.TractionCablesCount)},
		{"Diamètre des câbles de traction", clean(in.TractionCableDiameter)},
		{"Type de porte de cabine", clean(in.CabinDoorType)},
		{"Finition de la porte de cabine", clean(in.CabinDoorFinish)},
		{"Type de porte de palier", clean(in.LandingDoorsType)},
		{"Finition de la porte de palier", clean(in.LandingDoorsFinish)},
	}
}

func machinery(in *Inspection) [][2]string {
	return [][2]string{
		{"Position machinerie", clean(in.MachineryPosition)},
		{"Type accès machinerie", clean(in.MachineryAccessType)},
		{"Présence de ventilation", clean(in.VentilationPresence)},
		{"Présence de crochets d'ancrage", clean(in.AnchorHooksPresence)},
		{"Ancrages estampillés", clean(in.StampedAnchors)},
	}
}

func shaft(in *Inspection) [][2]string {
	return [][2]string{
		{"Type de gaine", clean(in.ShaftType)},
		{"Largeur gaine", clean(in.ShaftWidth)},
		{"Profondeur gaine", clean(in.ShaftDepth)},
		{"Hauteur sous dalle", clean(in.ShaftHeight)},
		{"Profondeur de la cuvette", clean(in.PitDepth)},
		{"Type de guides cabine", clean(in.CabinGuidesType)},
		{"Type de guides contrepoids", clean(in.CounterweightGuidesType)},
	}
}

func cabin(in *Inspection) [][2]string {
	return [][2]string{
		{"Largeur cabine", clean(in.CabinWidth)},
		{"Profondeur cabine", clean(in.CabinDepth)},
		{"Hauteur sous plafond cabine", clean(in.CabinHeight)},
		{"Finition parois cabine", clean(in.CabinWallsFinish)},
		{"Type d'éclairage cabine", clean(in.CabinLightingType)},
		{"Finition du plafond cabine", clean(in.CabinCeilingFinish)},
	}
}
